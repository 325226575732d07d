package rest

import "net/http"

type audioProviderInfo struct {
	Provider  string   `json:"provider"`
	Available bool     `json:"available"`
	Models    []string `json:"models"`
}

type featureFlags struct {
	ExternalInstrumentalAvailable bool              `json:"external_instrumental_available"`
	AudioProvider                 audioProviderInfo `json:"audio_provider"`
}

type appConfigResponse struct {
	AppName    string       `json:"app_name"`
	AppVersion string       `json:"app_version"`
	Features   featureFlags `json:"features"`
}

// GetConfig handles GET /api/config. The frontend uses it to discover
// which rendering features the backend configuration enables.
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	provider := h.info.AudioProvider
	if provider == "" {
		provider = "fake"
	}

	models := []string{}
	switch provider {
	case "stable_audio_http":
		models = []string{"Stable Audio 2.0", "Stable Audio Open"}
	case "musicgen":
		models = []string{"MusicGen Small", "MusicGen Medium", "MusicGen Large"}
	}

	writeJSON(w, http.StatusOK, appConfigResponse{
		AppName:    h.info.Name,
		AppVersion: h.info.Version,
		Features: featureFlags{
			ExternalInstrumentalAvailable: h.info.ExternalAudio,
			AudioProvider: audioProviderInfo{
				Provider:  provider,
				Available: h.info.ExternalAudio,
				Models:    models,
			},
		},
	})
}
