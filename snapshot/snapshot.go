// Package snapshot exports what a visitor sees as a printable postcard:
// the current simulation is re-rendered once at print resolution, encoded
// as PNG, and posted to the assembly service. When the service is down the
// postcard is written to a local directory instead so nothing is lost.
package snapshot

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Card carries the postcard text and routing fields alongside the image.
type Card struct {
	Title    string
	Subtitle string
	SimType  string // "rd", "osc" or "boids"
	Lang     string // "cs" or "en"
}

// Result reports where a postcard ended up.
type Result int

const (
	Sent       Result = iota // accepted by the assembly service
	SavedLocal               // service unreachable, written to fallback dir
	Failed                   // neither worked
)

type payload struct {
	Image    string `json:"image"` // data URL
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	SimType  string `json:"sim_type"`
	Lang     string `json:"lang"`
}

// Client posts postcards to one assembly endpoint. An empty endpoint means
// local saves only.
type Client struct {
	endpoint    string
	fallbackDir string
	http        *http.Client
}

// NewClient builds a postcard client. A single send attempt must not stall
// the exhibit, so the transport timeout is short and there are no retries.
func NewClient(endpoint, fallbackDir string) *Client {
	return &Client{
		endpoint:    endpoint,
		fallbackDir: fallbackDir,
		http:        &http.Client{Timeout: 4 * time.Second},
	}
}

// Capture re-renders the scene once into an off-screen target of the given
// print resolution and returns the PNG bytes. The render callback receives
// the target extent; the previous GL state is restored before returning.
func Capture(w, h int, render func(w, h int)) ([]byte, error) {
	target := rl.LoadRenderTexture(int32(w), int32(h))
	if target.ID == 0 {
		return nil, fmt.Errorf("allocating %dx%d snapshot target", w, h)
	}
	defer rl.UnloadRenderTexture(target)

	rl.BeginTextureMode(target)
	render(w, h)
	rl.EndTextureMode()

	img := rl.LoadImageFromTexture(target.Texture)
	defer rl.UnloadImage(img)
	// texture rows come back bottom-first
	rl.ImageFlipVertical(img)

	png := rl.ExportImageToMemory(*img, ".png")
	if len(png) == 0 {
		return nil, fmt.Errorf("encoding %dx%d snapshot", w, h)
	}
	return png, nil
}

// Send delivers one postcard: a single POST to the assembly service, then a
// local save if that fails. The outcome is logged and returned for the UI.
func (c *Client) Send(png []byte, card Card) Result {
	if c.endpoint != "" && c.post(png, card) == nil {
		slog.Info("postcard sent", "sim", card.SimType, "lang", card.Lang)
		return Sent
	}
	if path, err := c.saveLocal(png, card); err == nil {
		slog.Info("postcard saved locally", "path", path)
		return SavedLocal
	} else {
		slog.Error("postcard lost", "error", err)
		return Failed
	}
}

func (c *Client) post(png []byte, card Card) error {
	body, err := json.Marshal(payload{
		Image:    "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		Title:    card.Title,
		Subtitle: card.Subtitle,
		SimType:  card.SimType,
		Lang:     card.Lang,
	})
	if err != nil {
		return fmt.Errorf("marshaling postcard: %w", err)
	}

	resp, err := c.http.Post(c.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		slog.Warn("assembly service unreachable", "endpoint", c.endpoint, "error", err)
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		slog.Warn("assembly service rejected postcard", "status", resp.StatusCode)
		return fmt.Errorf("assembly service returned %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) saveLocal(png []byte, card Card) (string, error) {
	if err := os.MkdirAll(c.fallbackDir, 0o755); err != nil {
		return "", fmt.Errorf("creating fallback dir: %w", err)
	}
	name := fmt.Sprintf("postcard_%s_%s.png", card.SimType, time.Now().Format("20060102_150405"))
	path := filepath.Join(c.fallbackDir, name)
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return "", fmt.Errorf("writing postcard: %w", err)
	}
	return path, nil
}
