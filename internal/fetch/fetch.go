// Package fetch retrieves sample model files over HTTP. It exists for the
// CLI and opt-in network tests; the model layer itself never touches the
// network.
package fetch

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/eepeterson/godagmc/internal/fsutil"
	"github.com/eepeterson/godagmc/internal/httputil"
)

// DefaultFuelPinURL is the sample fuel-pin model used by the CLI.
const DefaultFuelPinURL = "https://tinyurl.com/y3ugwz6w"

// FuelPinURL returns the fuel-pin model URL, honoring the DAGMC_FUEL_PIN_URL
// environment override.
func FuelPinURL() string {
	if url := os.Getenv("DAGMC_FUEL_PIN_URL"); url != "" {
		return url
	}
	return DefaultFuelPinURL
}

// Download fetches url and writes the body to path. Any response status other
// than 200 is an error.
func Download(client httputil.HTTPClient, fsys fsutil.FileSystem, url, path string) error {
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", url, err)
	}
	if err := fsys.WriteFile(path, body, 0644); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
