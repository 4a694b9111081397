package utils

import (
	"fmt"
	"log"
	"time"

	"oakridge/config"

	"github.com/go-resty/resty/v2"
)

// NotifyWebhook posts a message to the configured Discord-style webhook.
// Fire-and-forget: failures are logged and swallowed, never surfaced to the
// caller. Callers run it in a goroutine so requests are not held up.
func NotifyWebhook(title, description string) {
	url := config.AppConfig.WebhookURL
	if url == "" {
		return
	}

	payload := map[string]interface{}{
		"embeds": []map[string]interface{}{
			{
				"title":       title,
				"description": description,
				"timestamp":   time.Now().UTC().Format(time.RFC3339),
			},
		},
	}

	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(url)
	if err != nil {
		log.Printf("[NOTIFY] Error sending webhook: %v", err)
		return
	}
	if resp.IsError() {
		log.Printf("[NOTIFY] Webhook returned status %d", resp.StatusCode())
	}
}

// NotifyApplicationSubmitted alerts staff about a new membership application.
func NotifyApplicationSubmitted(userName, userEmail string) {
	go NotifyWebhook("New Membership Application",
		fmt.Sprintf("%s (%s) submitted a membership application.", userName, userEmail))
}

// NotifyRoleChanged alerts staff about a user role change.
func NotifyRoleChanged(userName, oldRole, newRole string) {
	go NotifyWebhook("User Role Changed",
		fmt.Sprintf("%s: %s -> %s", userName, oldRole, newRole))
}

// NotifyCourseMutation alerts staff about an admin course change.
func NotifyCourseMutation(action, courseTitle string) {
	go NotifyWebhook("Course "+action, courseTitle)
}
