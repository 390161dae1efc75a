// Package notification posts fire-and-forget webhook alerts. A missing
// WEBHOOK_URL disables the whole package; delivery failures are logged
// and never surfaced to the caller.
package notification

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"
)

var client = &http.Client{Timeout: 10 * time.Second}

func post(payload map[string]interface{}) {
	url := os.Getenv("WEBHOOK_URL")
	if url == "" {
		return
	}

	body, _ := json.Marshal(payload)
	resp, err := client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		log.Printf("webhook delivery failed: %v", err)
		return
	}
	defer resp.Body.Close()
}

// SendDuplicateClientAlert notifies that a deal was created for a client
// name the workspace already tracks.
func SendDuplicateClientAlert(workspaceID uint, clientName string) {
	post(map[string]interface{}{
		"event":       "deal.duplicate_client",
		"workspaceId": workspaceID,
		"clientName":  clientName,
	})
}

// SendImportSummary notifies that a CSV import finished with failures.
func SendImportSummary(workspaceID uint, token string, success, failed int) {
	post(map[string]interface{}{
		"event":       "import.completed_with_errors",
		"workspaceId": workspaceID,
		"token":       token,
		"success":     success,
		"failed":      failed,
	})
}
