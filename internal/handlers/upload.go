package handlers

import (
	"net/http"

	"github.com/inkwellhq/inkwell-backend/internal/config"
	"github.com/inkwellhq/inkwell-backend/internal/services"
)

var cloudinaryService *services.CloudinaryService

// InitCloudinaryService wires the upload handler to Cloudinary.
// When credentials are absent, uploads return 500 and everything else
// keeps working.
func InitCloudinaryService(c *config.Config) error {
	service, err := services.NewCloudinaryService(
		c.CloudinaryName,
		c.CloudinaryAPIKey,
		c.CloudinaryAPISecret,
	)
	if err != nil {
		return err
	}
	cloudinaryService = service
	return nil
}

// UploadImage handles POST /api/upload: a multipart image destined for
// a post body or a profile picture. Returns the hosted URL.
func UploadImage(w http.ResponseWriter, r *http.Request) {
	if cloudinaryService == nil {
		respondError(w, http.StatusInternalServerError, "File upload service not available")
		return
	}

	// 10MB cap on the multipart form
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		respondError(w, http.StatusBadRequest, "Failed to parse form: "+err.Error())
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	folder := r.URL.Query().Get("folder")
	if folder == "" {
		folder = "inkwell"
	}

	url, err := cloudinaryService.UploadFile(r.Context(), file, folder)
	if err != nil {
		serverError(w, err, "Failed to upload file")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "File uploaded successfully",
		"url":     url,
	})
}
