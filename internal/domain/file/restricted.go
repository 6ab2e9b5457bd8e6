package file

import (
	"path/filepath"
	"strings"
)

// PHP sources must never be accepted: a misconfigured static file
// server could end up executing them. Both the client-declared type
// and the server-side sniffed type are checked, either one can be
// spoofed on its own.
var restrictedMIMETypes = map[string]bool{
	"text/php":                       true,
	"text/x-php":                     true,
	"application/php":                true,
	"application/x-php":              true,
	"application/x-httpd-php":        true,
	"application/x-httpd-php-source": true,
}

var restrictedExtensions = map[string]bool{
	"php": true,
}

func isRestrictedUpload(filename, declaredType, sniffedType string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if restrictedExtensions[ext] {
		return true
	}
	return restrictedMIMETypes[normalizeMIME(declaredType)] || restrictedMIMETypes[normalizeMIME(sniffedType)]
}

// normalizeMIME strips parameters like "; charset=utf-8".
func normalizeMIME(mime string) string {
	mime, _, _ = strings.Cut(mime, ";")
	return strings.ToLower(strings.TrimSpace(mime))
}
