package handlers

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-cloud-drive/internal/models"
)

func TestExportRows(t *testing.T) {
	folderID := "folder-1"
	rows := exportRows([]models.File{
		{ID: "f1", Name: "photo.jpg", MimeType: "image/jpeg", SizeBytes: 1536, FolderID: &folderID, IsFavorite: true},
		{ID: "f2", Name: "notes.txt", MimeType: "text/plain", SizeBytes: 10},
	})
	require.Len(t, rows, 2)

	assert.Equal(t, "image", rows[0].Type)
	assert.Equal(t, "1.5 KB", rows[0].Size)
	assert.Equal(t, "folder-1", rows[0].FolderID)
	assert.True(t, rows[0].Favorite)

	assert.Equal(t, "document", rows[1].Type)
	assert.Empty(t, rows[1].FolderID)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSV(&buf, exportRows([]models.File{
		{ID: "f1", Name: "photo.jpg", MimeType: "image/jpeg", SizeBytes: 1536},
	}))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ID,Name,Type,MimeType,Size,SizeBytes,FolderID,Favorite,Created At", lines[0])
	assert.Contains(t, lines[1], "photo.jpg")
	assert.Contains(t, lines[1], "1.5 KB")
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("client went away")
}

func TestWriteCSV_WriterFailure(t *testing.T) {
	err := writeCSV(brokenWriter{}, exportRows([]models.File{{ID: "f1", Name: "a.txt"}}))
	assert.Error(t, err)
}
