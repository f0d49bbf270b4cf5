// import_oi_csv loads a roaming-consortium operator registry from a CSV file
// into the SQLite database hsmap uses for OI lookups.
//
// Expected CSV columns: oi (hex, e.g. 506f9a), operator, country.
//
// Usage:
//
//	import_oi_csv -csv operators.csv -db ~/.hsmap/oi_registry.db
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/lcalzada-xor/hsmap/internal/adapters/storage"
)

func main() {
	csvPath := flag.String("csv", "", "Path to the operator CSV file")
	dbPath := flag.String("db", "oi_registry.db", "Path to the SQLite registry database")
	flag.Parse()

	if *csvPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	file, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("open csv: %v", err)
	}
	defer file.Close()

	registry, err := storage.NewOIRegistry(*dbPath)
	if err != nil {
		log.Fatalf("open registry: %v", err)
	}
	defer registry.Close()

	entries, skipped, err := readEntries(csv.NewReader(file))
	if err != nil {
		log.Fatalf("read csv: %v", err)
	}

	ctx := context.Background()
	if err := registry.BulkInsertOIs(ctx, entries); err != nil {
		log.Fatalf("bulk insert: %v", err)
	}

	total, err := registry.Count(ctx)
	if err != nil {
		log.Fatalf("count: %v", err)
	}
	fmt.Printf("Imported %d entries (%d skipped), registry now holds %d operators\n",
		len(entries), skipped, total)
}

func readEntries(reader *csv.Reader) ([]storage.OIEntry, int, error) {
	reader.FieldsPerRecord = -1

	var entries []storage.OIEntry
	skipped := 0
	now := time.Now()
	first := true

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, err
		}

		// Tolerate a header row.
		if first {
			first = false
			if strings.EqualFold(record[0], "oi") {
				continue
			}
		}

		if len(record) < 2 || record[0] == "" || record[1] == "" {
			skipped++
			continue
		}

		entry := storage.OIEntry{
			OI:          strings.ToLower(strings.TrimSpace(record[0])),
			Operator:    strings.TrimSpace(record[1]),
			LastUpdated: now,
		}
		if len(record) > 2 {
			entry.Country = strings.TrimSpace(record[2])
		}
		entries = append(entries, entry)
	}

	return entries, skipped, nil
}
