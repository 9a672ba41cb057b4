package photos

import (
	"strings"

	"pet-manager-admin/internal/ports/petapi"
)

// Resolución de la foto "estática" para contextos que no renderizan
// animación (miniaturas, detalle). Función pura: nunca panickea, ante
// cualquier cosa rara degrada a "".

// StaticURL devuelve la URL del adjunto más reciente (id más alto) que
// no sea una imagen animada. Slice vacío o todo animado => "".
func StaticURL(attachments []petapi.Attachment) string {
	var best *petapi.Attachment
	for i := range attachments {
		a := &attachments[i]
		if strings.TrimSpace(a.URL) == "" {
			continue
		}
		if isAnimated(*a) {
			continue
		}
		if best == nil || a.ID > best.ID {
			best = a
		}
	}
	if best == nil {
		return ""
	}
	return best.URL
}

// isAnimated detecta GIFs por content-type declarado o, a falta de
// eso, por el sufijo de la URL (case-insensitive, ignorando el query
// string).
func isAnimated(a petapi.Attachment) bool {
	if strings.EqualFold(strings.TrimSpace(a.ContentType), "image/gif") {
		return true
	}

	u := strings.ToLower(strings.TrimSpace(a.URL))
	if u == "" {
		return false
	}
	// .gif antes del query string también cuenta
	path, _, _ := strings.Cut(u, "?")
	return strings.HasSuffix(path, ".gif")
}
