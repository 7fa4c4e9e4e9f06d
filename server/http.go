// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"net/http"
	"strconv"

	"github.com/SoftbearStudios/tilegen/logger"
)

func (s *Server) ServeIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	buf, ok := s.statusJSON.Load().([]byte)
	if ok {
		_, _ = w.Write(buf)
	}
}

func (s *Server) ServeTile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	request, err := ParseRequest(r.URL.Query())
	if err == nil {
		var png []byte
		if png, err = s.Render(request); err == nil {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Content-Type", "image/png")
			w.Header().Set("Content-Length", strconv.Itoa(len(png)))
			_, _ = w.Write(png)
			return
		}
	}

	code := statusCode(err)
	if code == http.StatusInternalServerError {
		logger.Error("render error", "url", r.URL.String(), "error", err)
	}
	http.Error(w, err.Error(), code)
}

func (s *Server) ServeRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.Records(r.URL.Query().Get("type"))
	if err == nil {
		var buf []byte
		if buf, err = json.Marshal(records); err == nil {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(buf)
			return
		}
	}

	code := statusCode(err)
	if code == http.StatusInternalServerError {
		logger.Error("records error", "url", r.URL.String(), "error", err)
	}
	http.Error(w, err.Error(), code)
}

func (s *Server) ServeSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warning("upgrade error", "error", err)
		return
	}

	NewSocketClient(s, conn).Init()
}
