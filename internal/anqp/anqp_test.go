package anqp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLines(t *testing.T) {
	lines := []string{
		"anqp_venue_name=010a0b",
		"hs20_wan_metrics=01ac2600008001000000000a00",
		"  anqp_domain_name=076578616d706c65  ",
	}

	elements := ParseLines(lines)
	require.Len(t, elements, 3)

	venue, ok := elements[VenueName]
	require.True(t, ok)
	assert.Equal(t, VenueName, venue.Type)
	assert.Equal(t, []byte{0x01, 0x0a, 0x0b}, venue.Payload)

	_, ok = elements[HSWANMetrics]
	assert.True(t, ok)
	_, ok = elements[DomainName]
	assert.True(t, ok)
}

func TestParseLinesSkipsBadInput(t *testing.T) {
	lines := []string{
		"",
		"no separator here",
		"unknown_line=0102",
		"anqp_nai_realm=zznothex",
		"anqp_nai_realm=0102", // valid, must survive the noise
	}

	elements := ParseLines(lines)
	require.Len(t, elements, 1)
	assert.Equal(t, []byte{0x01, 0x02}, elements[NAIRealm].Payload)
}

func TestParseLinesEmpty(t *testing.T) {
	assert.NotNil(t, ParseLines(nil))
	assert.Empty(t, ParseLines(nil))
	assert.Empty(t, ParseLines([]string{}))
}

func TestParseLinesLastWins(t *testing.T) {
	elements := ParseLines([]string{
		"anqp_venue_name=01",
		"anqp_venue_name=02",
	})
	require.Len(t, elements, 1)
	assert.Equal(t, []byte{0x02}, elements[VenueName].Payload)
}

func TestElementTypeString(t *testing.T) {
	assert.Equal(t, "VenueName", VenueName.String())
	assert.Equal(t, "HSWANMetrics", HSWANMetrics.String())
	assert.Equal(t, "ANQPElement(999)", ElementType(999).String())
}
