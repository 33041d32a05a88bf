package sales

import (
	"context"
	"errors"
	"strings"
)

// Operation names the user action a notice is reported for.
type Operation string

const (
	OpLoad     Operation = "load"
	OpDelete   Operation = "delete"
	OpCreate   Operation = "create"
	OpUpdate   Operation = "update"
	OpDownload Operation = "download"
	OpLogin    Operation = "login"
)

// DefaultLocale is used when the viewer has no preference.
const DefaultLocale = "es"

// TranslationService lets hosts plug in their own catalog. Notices fall back
// to the built-in Spanish/English messages when it is nil or misses a key.
type TranslationService interface {
	Translate(ctx context.Context, key, locale string, args map[string]any) (string, error)
}

var operationNotices = map[Operation]map[string]string{
	OpLoad: {
		"es": "Error al cargar las ventas",
		"en": "Error fetching sales data",
	},
	OpDelete: {
		"es": "Hubo un error al eliminar los registros.",
		"en": "There was an error deleting the records.",
	},
	OpCreate: {
		"es": "Error al crear la reserva",
		"en": "Error creating the booking",
	},
	OpUpdate: {
		"es": "Error al actualizar la reserva",
		"en": "Error updating the booking",
	},
	OpDownload: {
		"es": "Error al descargar el archivo",
		"en": "Error downloading the file",
	},
	OpLogin: {
		"es": "Credenciales inválidas",
		"en": "Invalid credentials",
	},
}

var rangeNotices = map[string]string{
	"es": "Selecciona un rango de fechas válido",
	"en": "Select a valid date range",
}

var kindNotices = map[ErrorKind]map[string]string{
	KindTransport: {
		"es": "Error de conexión",
		"en": "Connection error",
	},
	KindSession: {
		"es": "Tu sesión expiró, inicia sesión de nuevo",
		"en": "Your session expired, please sign in again",
	},
	KindValidation: {
		"es": "Revisa los datos del formulario",
		"en": "Please review the form fields",
	},
}

var successNotices = map[Operation]map[string]string{
	OpCreate: {
		"es": "Reserva agregada con éxito",
		"en": "Booking created",
	},
	OpUpdate: {
		"es": "Reserva actualizada con éxito",
		"en": "Booking updated",
	},
	OpDelete: {
		"es": "Registros eliminados",
		"en": "Records deleted",
	},
	OpDownload: {
		"es": "Descarga completada",
		"en": "Download completed",
	},
}

// Notice converts err into the message shown to the user for op. Remote
// errors carrying a backend message surface that message verbatim.
func Notice(ctx context.Context, svc TranslationService, op Operation, locale string, err error) string {
	if err == nil {
		return ""
	}
	kind := Classify(err)
	var remote *RemoteError
	if kind == KindRemote && errors.As(err, &remote) && strings.TrimSpace(remote.Message) != "" {
		return remote.Message
	}
	if op == OpLoad && (errors.Is(err, ErrDateRangeRequired) || errors.Is(err, ErrInvalidDateRange)) {
		fallback := ResolveLocalizedValue(rangeNotices, locale, err.Error())
		return translateOrFallback(ctx, svc, "sales.notice.load.range", locale, fallback, map[string]any{"error": err.Error()})
	}
	fallback := ResolveLocalizedValue(operationNotices[op], locale, err.Error())
	if values, ok := kindNotices[kind]; ok {
		fallback = ResolveLocalizedValue(values, locale, fallback)
	}
	key := "sales.notice." + string(op)
	if kind != KindRemote && kind != KindUnknown {
		key += "." + string(kind)
	}
	return translateOrFallback(ctx, svc, key, locale, fallback, map[string]any{"error": err.Error()})
}

// SuccessNotice returns the confirmation shown after op completes.
func SuccessNotice(op Operation, locale string) string {
	return ResolveLocalizedValue(successNotices[op], locale, "")
}

// ResolveLocalizedValue selects the best translation for the provided locale
// and falls back to the supplied value. Keys are matched case-insensitively
// and `es-ec` falls back to `es`.
func ResolveLocalizedValue(values map[string]string, locale, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	for _, candidate := range localeCandidates(locale) {
		for key, value := range values {
			if strings.EqualFold(key, candidate) && value != "" {
				return value
			}
		}
	}
	return fallback
}

func localeCandidates(locale string) []string {
	locale = normalizeLocale(locale)
	if locale == "" {
		return []string{DefaultLocale}
	}
	candidates := []string{locale}
	if idx := strings.Index(locale, "-"); idx > 0 {
		candidates = append(candidates, locale[:idx])
	}
	return append(candidates, DefaultLocale)
}

func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.TrimSpace(strings.ToLower(locale)), "_", "-")
}

func translateOrFallback(ctx context.Context, svc TranslationService, key, locale, fallback string, params map[string]any) string {
	if svc != nil {
		if translated, err := svc.Translate(ctx, key, locale, params); err == nil && translated != "" {
			return translated
		}
	}
	if fallback != "" {
		return fallback
	}
	return key
}
