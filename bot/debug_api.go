package bot

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

// DebugResponse is the envelope for every debug API reply
type DebugResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// GuildInfo represents basic guild information
type GuildInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MemberCount int    `json:"member_count"`
}

// StartDebugAPI starts an internal HTTP API for inspecting the running bot
func (b *Bot) StartDebugAPI(port int) error {
	if port == 0 {
		log.Info("Debug API disabled")
		return nil
	}

	server := &http.Server{
		Addr:         fmt.Sprintf("127.0.0.1:%d", port),
		Handler:      b.debugHandler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Debug API listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("Debug API server error: %v", err)
		}
	}()

	b.debugServer = server
	return nil
}

func (b *Bot) debugHandler() http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("/debug/guilds", getOnly(func(w http.ResponseWriter, r *http.Request) {
		respondWithData(w, b.GetGuilds())
	}))

	mux.HandleFunc("/debug/config", getOnly(func(w http.ResponseWriter, r *http.Request) {
		guildID, ok := guildParam(w, r)
		if !ok {
			return
		}

		config, err := b.services.GuildConfig.GetConfig(r.Context(), guildID)
		if err != nil {
			respondWithError(w, fmt.Sprintf("Failed to load config: %v", err), http.StatusInternalServerError)
			return
		}
		respondWithData(w, config)
	}))

	mux.HandleFunc("/debug/moderation", getOnly(func(w http.ResponseWriter, r *http.Request) {
		if b.services.ModerationLog == nil {
			respondWithError(w, "Moderation log requires a database", http.StatusNotFound)
			return
		}

		guildID, ok := guildParam(w, r)
		if !ok {
			return
		}

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				respondWithError(w, "Invalid limit", http.StatusBadRequest)
				return
			}
			limit = parsed
		}

		entries, err := b.services.ModerationLog.Recent(r.Context(), guildID, limit)
		if err != nil {
			respondWithError(w, fmt.Sprintf("Failed to load moderation log: %v", err), http.StatusInternalServerError)
			return
		}
		respondWithData(w, entries)
	}))

	return mux
}

// GetGuilds lists the guilds in the state cache
func (b *Bot) GetGuilds() []GuildInfo {
	b.session.State.RLock()
	defer b.session.State.RUnlock()

	guilds := make([]GuildInfo, 0, len(b.session.State.Guilds))
	for _, g := range b.session.State.Guilds {
		guilds = append(guilds, GuildInfo{ID: g.ID, Name: g.Name, MemberCount: g.MemberCount})
	}
	return guilds
}

func getOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}

func guildParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.URL.Query().Get("guild_id")
	guildID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || guildID <= 0 {
		respondWithError(w, "Missing or invalid guild_id", http.StatusBadRequest)
		return 0, false
	}
	return guildID, true
}

func respondWithData(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(DebugResponse{
		Success: true,
		Data:    data,
	})
}

func respondWithError(w http.ResponseWriter, error string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(DebugResponse{
		Success: false,
		Error:   error,
	})
}
