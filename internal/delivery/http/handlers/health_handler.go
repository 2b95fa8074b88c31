package handlers

import (
	"net/http"
)

const privacyPage = `<html>
  <body>
    <h1>Privacy Policy</h1>
    <p>Our food delivery bot respects your privacy. We only collect your delivery address and phone number to process your food orders. Contact us for more information.</p>
  </body>
</html>
`

type healthResponse struct {
	Status    string            `json:"status"`
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
}

func Health(w http.ResponseWriter, _ *http.Request) {
	_ = WriteJSON(w, http.StatusOK, healthResponse{
		Status:  "running",
		Message: "Facebook Messenger Food Bot is active!",
		Endpoints: map[string]string{
			"webhook": "/webhook (GET for verification, POST for messages)",
			"health":  "/ (this endpoint)",
			"privacy": "/privacy (Privacy Policy)",
			"admin":   "/api",
			"metrics": "/metrics",
		},
	})
}

func Privacy(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(privacyPage))
}
