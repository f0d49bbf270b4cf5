package reporting

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcalzada-xor/hsmap/internal/core/domain"
)

func surveyNetworks(t *testing.T) []domain.NetworkDescriptor {
	t.Helper()

	passpoint := domain.NewScanData()
	passpoint.SSIDPresent = true
	passpoint.SSIDOctets = []byte("wing")
	ant := domain.AntFreePublic
	passpoint.Ant = &ant
	passpoint.Internet = true
	group := domain.VenueGroupVehicular
	passpoint.VenueGroup = &group
	release := domain.HSReleaseR2
	passpoint.HSRelease = &release
	passpoint.RoamingConsortiums = []uint64{0x111111}
	passpoint.StationCount = 42

	hidden := domain.NewScanData()

	return []domain.NetworkDescriptor{
		domain.NewNetworkDescriptor(domain.MustParseMAC("00:11:22:33:44:55"), passpoint, nil),
		domain.NewNetworkDescriptor(domain.MustParseMAC("00:11:22:33:44:56"), hidden, nil),
	}
}

func TestExportSurvey(t *testing.T) {
	exporter := NewPDFExporter()
	report, err := exporter.ExportSurvey(surveyNetworks(t), "session-1")
	require.NoError(t, err)
	require.NotEmpty(t, report)
	assert.True(t, bytes.HasPrefix(report, []byte("%PDF")), "output must be a PDF document")
}

func TestExportSurveyEmpty(t *testing.T) {
	exporter := NewPDFExporter()
	report, err := exporter.ExportSurvey(nil, "session-empty")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(report, []byte("%PDF")))
}
