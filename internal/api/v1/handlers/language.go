package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"
	"nmai/sunrise-service/internal/i18n"
)

func (h *Router) GetLanguage(w http.ResponseWriter, r *http.Request) {
	lang := queryParam(r, "lang")
	if lang == "" {
		respondWithError(w, http.StatusBadRequest, msgLanguageMissing)
		return
	}

	if lang == i18n.SupportedLanguagesName {
		respondWithError(w, http.StatusBadRequest, msgLanguageInvalid)
		return
	}

	document, err := h.translations.Translation(lang)
	if err != nil {
		if errors.Is(err, i18n.ErrNotSupported) {
			respondWithError(w, http.StatusBadRequest, msgLanguageNotSupported)
			return
		}
		hlog.FromRequest(r).Error().Err(err).Str("lang", lang).Msg("failed to load translation")
		respondWithError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	respondWithRawJSON(w, http.StatusOK, document)
}

func (h *Router) GetSupportedLanguages(w http.ResponseWriter, r *http.Request) {
	document, err := h.translations.SupportedLanguages()
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to load supported languages")
		respondWithError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	respondWithRawJSON(w, http.StatusOK, document)
}
