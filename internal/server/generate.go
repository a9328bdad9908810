package server

import (
	"encoding/base64"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"foliogen/internal/pipeline"
	"foliogen/internal/types"
)

// GenerateHandler serves the generation endpoints.
type GenerateHandler struct {
	Pipeline *pipeline.Pipeline
}

// generateRequest is the wire form of one generation request. Reference
// image bytes travel base64-encoded.
type generateRequest struct {
	Personal types.PersonalInfo    `json:"personal"`
	Projects []types.Project       `json:"projects"`
	Options  types.GenerateOptions `json:"options"`
	Images   []wireImage           `json:"reference_images"`
}

type wireImage struct {
	Filename string `json:"filename"`
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

func (req *generateRequest) toUserData() (*types.UserData, error) {
	user := &types.UserData{
		Personal: req.Personal,
		Projects: req.Projects,
		Options:  req.Options,
	}
	for _, img := range req.Images {
		data, err := base64.StdEncoding.DecodeString(img.Data)
		if err != nil {
			return nil, err
		}
		user.ReferenceImages = append(user.ReferenceImages, types.ReferenceImage{
			Filename: img.Filename,
			MIMEType: img.MIMEType,
			Data:     data,
		})
	}
	return user, nil
}

func (h *GenerateHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	user, err := req.toUserData()
	if err != nil {
		http.Error(w, "invalid reference image encoding", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(user.Personal.Name) == "" {
		http.Error(w, "personal.name is required", http.StatusBadRequest)
		return
	}

	result, err := h.Pipeline.Run(r.Context(), user, nil)
	if err != nil {
		// Only context cancellation escapes the pipeline as an error.
		http.Error(w, err.Error(), http.StatusRequestTimeout)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

const (
	wsWriteWait = 10 * time.Second
	wsReadWait  = 60 * time.Second
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type wsOutbound struct {
	Type   string           `json:"type"` // "progress" | "result" | "error"
	Stage  string           `json:"stage,omitempty"`
	Detail string           `json:"detail,omitempty"`
	Result *pipeline.Result `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// HandleGenerateWS accepts one generation request over a websocket and
// streams stage progress before the final result.
func (h *GenerateHandler) HandleGenerateWS(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(wsReadWait))
	var req generateRequest
	if err := conn.ReadJSON(&req); err != nil {
		writeWS(conn, wsOutbound{Type: "error", Error: "invalid request"})
		return
	}
	user, err := req.toUserData()
	if err != nil {
		writeWS(conn, wsOutbound{Type: "error", Error: "invalid reference image encoding"})
		return
	}

	progress := func(stage, detail string) {
		writeWS(conn, wsOutbound{Type: "progress", Stage: stage, Detail: detail})
	}
	result, err := h.Pipeline.Run(r.Context(), user, progress)
	if err != nil {
		writeWS(conn, wsOutbound{Type: "error", Error: err.Error()})
		return
	}
	writeWS(conn, wsOutbound{Type: "result", Result: result})
}

func writeWS(conn *websocket.Conn, msg wsOutbound) {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("server: websocket write failed: %v", err)
	}
}
