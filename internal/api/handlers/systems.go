package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"solar-roi/internal/api/models"
	"solar-roi/internal/config"
)

// SystemHandler handles system preset requests
type SystemHandler struct {
	systemDir string
}

// GetSystemDir returns the system preset directory path (for debugging)
func (h *SystemHandler) GetSystemDir() string {
	return h.systemDir
}

// NewSystemHandler creates a new system handler
func NewSystemHandler() *SystemHandler {
	dir := systemDir()

	// Convert to absolute path for reliability
	absDir, err := filepath.Abs(dir)
	if err == nil {
		dir = absDir
	}

	log.Printf("SystemHandler: Using system directory: %s", dir)

	return &SystemHandler{systemDir: dir}
}

// ListSystems handles GET /api/v1/systems
func (h *SystemHandler) ListSystems(c *gin.Context) {
	systems := []models.SystemInfo{}

	entries, err := os.ReadDir(h.systemDir)
	if err != nil {
		log.Printf("SystemHandler: Failed to read system directory %s: %v", h.systemDir, err)
		c.JSON(http.StatusOK, gin.H{"systems": systems})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(h.systemDir, entry.Name())
		info, err := h.loadSystemInfo(path, entry.Name())
		if err != nil {
			log.Printf("SystemHandler: Failed to load system file %s: %v", path, err)
			continue // Skip invalid files
		}

		systems = append(systems, *info)
	}

	log.Printf("SystemHandler: Returning %d systems", len(systems))

	c.JSON(http.StatusOK, gin.H{"systems": systems})
}

func (h *SystemHandler) loadSystemInfo(path, filename string) (*models.SystemInfo, error) {
	sys, err := config.LoadSystemFile(path)
	if err != nil {
		return nil, err
	}

	// The filename without extension is the preset ID
	// (e.g. "rooftop_5kw.yaml" -> "rooftop_5kw")
	id := strings.TrimSuffix(filename, ".yaml")

	name := sys.Name
	if name == "" {
		name = id
	}

	return &models.SystemInfo{
		ID:   id,
		Name: name,
		File: path,
		Specs: models.SystemSpecs{
			RatedPowerKw: sys.RatedPowerKw,
		},
	}, nil
}
