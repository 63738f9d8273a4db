package vfs

import (
	"strings"
)

// binaryExtensions is the set of file extensions stored in the binary content
// column. Everything else is stored as text.
var binaryExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true, "bmp": true,
	"ico": true, "tiff": true, "webp": true,
	"pdf": true, "doc": true, "docx": true, "xls": true, "xlsx": true,
	"ppt": true, "pptx": true,
	"zip": true, "tar": true, "gz": true, "rar": true, "7z": true,
	"mp3": true, "mp4": true, "avi": true, "mov": true, "wmv": true, "flv": true,
	"exe": true, "dll": true, "so": true, "dylib": true,
	"woff": true, "woff2": true, "ttf": true, "otf": true,
}

// binaryContentTypes maps binary extensions to MIME types.
var binaryContentTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"ico":  "image/x-icon",
	"tiff": "image/tiff",
	"webp": "image/webp",
	"pdf":  "application/pdf",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"xls":  "application/vnd.ms-excel",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"ppt":  "application/vnd.ms-powerpoint",
	"pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"zip":  "application/zip",
	"tar":  "application/x-tar",
	"gz":   "application/gzip",
	"rar":  "application/vnd.rar",
	"7z":   "application/x-7z-compressed",
	"mp3":  "audio/mpeg",
	"mp4":  "video/mp4",
	"avi":  "video/x-msvideo",
	"mov":  "video/quicktime",
	"wmv":  "video/x-ms-wmv",
	"flv":  "video/x-flv",
	"exe":  "application/octet-stream",
	"dll":  "application/octet-stream",
	"so":   "application/octet-stream",
	"dylib": "application/octet-stream",
	"woff":  "font/woff",
	"woff2": "font/woff2",
	"ttf":   "font/ttf",
	"otf":   "font/otf",
}

// textContentTypes maps text extensions to MIME types.
var textContentTypes = map[string]string{
	"md":   "text/markdown",
	"txt":  "text/plain",
	"json": "application/json",
	"html": "text/html",
	"htm":  "text/html",
	"css":  "text/css",
	"js":   "application/javascript",
	"ts":   "text/typescript",
	"xml":  "application/xml",
	"yaml": "application/yaml",
	"yml":  "application/yaml",
}

// extensionOf returns the lowercase extension of name without the dot, or ""
// when name has none.
func extensionOf(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 || idx == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[idx+1:])
}

// IsBinaryName reports whether a file with this name is stored in the binary
// content column.
func IsBinaryName(name string) bool {
	return binaryExtensions[extensionOf(name)]
}

// ContentTypeFor derives the MIME content type for a file name. Unknown
// extensions map to application/octet-stream.
func ContentTypeFor(name string) string {
	ext := extensionOf(name)
	if ct, ok := binaryContentTypes[ext]; ok {
		return ct
	}
	if ct, ok := textContentTypes[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}
