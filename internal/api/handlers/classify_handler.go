// internal/api/handlers/classify_handler.go
package handlers

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"e-waste-api-server/internal/classifier"
	"e-waste-api-server/internal/s3"
)

// maxImageBytes caps the uploaded detection photo at 10 MB.
const maxImageBytes = 10 << 20

type ClassifyHandler struct {
	Classifier classifier.Classifier
	Uploader   *s3.Uploader
}

// Classify accepts a multipart image, stores it, asks the external model
// for a label and returns a candidate item. When the top probability is
// at or below the auto-confirm threshold the client must prompt for a
// manual selection from the catalog instead of auto-confirming.
func (h *ClassifyHandler) Classify(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "An image file is required"})
		return
	}
	if fileHeader.Size > maxImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image exceeds the 10MB limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded image"})
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded image"})
		return
	}

	// The stored URL goes onto the detection record when the user confirms.
	var imageURL string
	if h.Uploader != nil {
		objectKey := fmt.Sprintf("detections/%s/%s", time.Now().Format("2006-01-02"), uuid.New().String())
		imageURL, err = h.Uploader.UploadFile(c.Request.Context(), bytes.NewReader(imageData), objectKey, fileHeader.Header.Get("Content-Type"))
		if err != nil {
			log.Printf("Failed to upload detection image: %v", err)
			imageURL = ""
		}
	}

	predictions, err := h.Classifier.Classify(c.Request.Context(), bytes.NewReader(imageData))
	if err != nil {
		respondError(c, err)
		return
	}

	top, needsManualConfirm, ok := classifier.TopCandidate(predictions)

	response := gin.H{
		"predictions":        predictions,
		"needsManualConfirm": needsManualConfirm,
		"imageURL":           imageURL,
		"catalog":            classifier.Catalog,
	}

	spec, known := classifier.ItemSpec{}, false
	if ok {
		spec, known = classifier.Lookup(top.Label)
	}
	if !known {
		// Unknown label: the catalog above is the manual-selection menu.
		response["needsManualConfirm"] = true
		c.JSON(http.StatusOK, response)
		return
	}

	condition := c.DefaultPostForm("condition", "Good")
	weight, _ := strconv.ParseFloat(c.PostForm("weight"), 64)
	if weight > 0 {
		item := classifier.Estimate(spec, condition, weight, top.Probability*100)
		item.Image = imageURL
		response["item"] = item
	}
	response["candidate"] = spec

	c.JSON(http.StatusOK, response)
}
