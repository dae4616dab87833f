package utils

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
)

// FormatBytes renders a byte count the way the drive UI shows it.
func FormatBytes(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}
	const unit = 1024
	sizes := []string{"B", "KB", "MB", "GB", "TB"}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(unit)))
	if i >= len(sizes) {
		i = len(sizes) - 1
	}
	value := float64(bytes) / math.Pow(unit, float64(i))
	value = math.Round(value*10) / 10
	return fmt.Sprintf("%s %s", strconv.FormatFloat(value, 'f', -1, 64), sizes[i])
}

// GetFileType buckets a filename into a coarse media category.
func GetFileType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return "image"
	case ".mp4", ".mov", ".avi":
		return "video"
	case ".mp3", ".wav", ".ogg":
		return "audio"
	case ".pdf", ".doc", ".docx", ".txt":
		return "document"
	default:
		return "other"
	}
}

// ParseIntOption parses a string value to an integer, returning 0 if the
// string is empty or invalid
func ParseIntOption(value string) int {
	if value == "" {
		return 0
	}
	num, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return num
}
