// Package filemgr stores uploaded images under ./uploads and writes a
// resized thumbnail next to each original.
package filemgr

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"tripmate/utils"

	"github.com/disintegration/imaging"
)

type EntityType string

const (
	EntityAvatar EntityType = "avatar"
	EntityPost   EntityType = "post"
)

const (
	uploadRoot   = "uploads"
	maxUploadMB  = 10
	thumbWidth   = 300
	avatarWidth  = 256
)

var allowedExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// SaveImageWithThumb decodes, re-encodes and stores one uploaded image,
// returning the public URL paths of the original and its thumbnail.
// Re-encoding through imaging drops any EXIF payload on the floor.
func SaveImageWithThumb(file multipart.File, header *multipart.FileHeader, entity EntityType) (string, string, error) {
	if header.Size > maxUploadMB*1024*1024 {
		return "", "", fmt.Errorf("filemgr: file exceeds %dMB limit", maxUploadMB)
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExts[ext] {
		return "", "", errors.New("filemgr: unsupported image type")
	}

	img, err := imaging.Decode(file)
	if err != nil {
		return "", "", fmt.Errorf("filemgr: decode image: %w", err)
	}

	dir := filepath.Join(uploadRoot, string(entity))
	thumbDir := filepath.Join(dir, "thumb")
	if err := utils.EnsureDir(dir); err != nil {
		return "", "", err
	}
	if err := utils.EnsureDir(thumbDir); err != nil {
		return "", "", err
	}

	uniqueID := utils.GenerateRandomString(16)
	fileName := uniqueID + ".jpg"

	if err := imaging.Save(img, filepath.Join(dir, fileName)); err != nil {
		return "", "", fmt.Errorf("filemgr: save image: %w", err)
	}

	width := thumbWidth
	if entity == EntityAvatar {
		width = avatarWidth
	}
	thumb := imaging.Resize(img, width, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(thumbDir, fileName)); err != nil {
		return "", "", fmt.Errorf("filemgr: save thumbnail: %w", err)
	}

	base := "/" + uploadRoot + "/" + string(entity)
	return base + "/" + fileName, base + "/thumb/" + fileName, nil
}

// SaveFormImages stores every file under formKey, returning original URLs.
func SaveFormImages(form *multipart.Form, formKey string, entity EntityType) ([]string, error) {
	headers := form.File[formKey]
	paths := make([]string, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			return nil, err
		}
		path, _, err := SaveImageWithThumb(file, header, entity)
		file.Close()
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
