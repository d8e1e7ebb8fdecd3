// Package helpers provides MailHog access for integration tests.
package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const mailhogBaseURL = "http://localhost:8025"

type mailhogAddress struct {
	Mailbox string `json:"Mailbox"`
	Domain  string `json:"Domain"`
}

type mailhogMessage struct {
	To      []mailhogAddress `json:"To"`
	Content struct {
		Headers map[string][]string `json:"Headers"`
		Body    string              `json:"Body"`
	} `json:"Content"`
}

type mailhogResponse struct {
	Total int              `json:"total"`
	Items []mailhogMessage `json:"items"`
}

func fetchMessages() (*mailhogResponse, error) {
	resp, err := http.Get(mailhogBaseURL + "/api/v2/messages")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var messages mailhogResponse
	if err := json.NewDecoder(resp.Body).Decode(&messages); err != nil {
		return nil, err
	}
	return &messages, nil
}

func findMessage(to, subjectContains string) (*mailhogMessage, bool) {
	messages, err := fetchMessages()
	if err != nil {
		return nil, false
	}

	for i := range messages.Items {
		message := &messages.Items[i]
		if !addressedTo(message, to) {
			continue
		}
		for _, subject := range message.Content.Headers["Subject"] {
			if strings.Contains(subject, subjectContains) {
				return message, true
			}
		}
	}
	return nil, false
}

func addressedTo(message *mailhogMessage, to string) bool {
	for _, recipient := range message.To {
		if fmt.Sprintf("%s@%s", recipient.Mailbox, recipient.Domain) == to {
			return true
		}
	}
	return false
}

// CheckEmailSent reports whether MailHog holds a message for the recipient
// whose subject contains the given fragment.
func CheckEmailSent(to, subjectContains string) bool {
	_, found := findMessage(to, subjectContains)
	return found
}

// GetEmailContent returns the body of the first matching message
func GetEmailContent(to, subjectContains string) (string, error) {
	message, found := findMessage(to, subjectContains)
	if !found {
		return "", fmt.Errorf("email to %s with subject containing %q not found", to, subjectContains)
	}
	return message.Content.Body, nil
}

// ClearEmails removes every stored message from MailHog
func ClearEmails() error {
	req, err := http.NewRequest(http.MethodDelete, mailhogBaseURL+"/api/v1/messages", nil)
	if err != nil {
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	return nil
}
