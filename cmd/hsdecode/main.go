// hsdecode decodes a single scan result from the command line and prints the
// resulting network descriptor. Useful for inspecting captures without
// running the daemon.
//
// Usage:
//
//	hsdecode -bssid 00:11:22:33:44:55 -ie ie=000477696e67 [-anqp file]
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/lcalzada-xor/hsmap/internal/adapters/sniffer/ie"
)

func main() {
	bssid := flag.String("bssid", "", "BSSID of the scanned network (hex, any separators)")
	ieText := flag.String("ie", "", "Information elements in 'ie=<hex>' form")
	anqpPath := flag.String("anqp", "", "Optional file with raw ANQP response lines")
	flag.Parse()

	if *bssid == "" || *ieText == "" {
		flag.Usage()
		os.Exit(2)
	}

	var anqpLines []string
	if *anqpPath != "" {
		file, err := os.Open(*anqpPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hsdecode: %v\n", err)
			os.Exit(1)
		}
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			anqpLines = append(anqpLines, scanner.Text())
		}
		file.Close()
		if err := scanner.Err(); err != nil {
			fmt.Fprintf(os.Stderr, "hsdecode: %v\n", err)
			os.Exit(1)
		}
	}

	nd, err := ie.ParseNetworkDescriptor(*bssid, *ieText, anqpLines)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hsdecode: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(nd)
}
