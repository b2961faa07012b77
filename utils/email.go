package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"
)

// email request payload for ZeptoMail API
type emailRequest struct {
	From     emailAddress  `json:"from"`
	To       []toRecipient `json:"to"`
	Subject  string        `json:"subject"`
	HtmlBody string        `json:"htmlbody"`
}

type emailAddress struct {
	Address string `json:"address"`
}

type toRecipient struct {
	Email emailWithName `json:"email_address"`
}

type emailWithName struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

// SendEmail sends an HTML email using the ZeptoMail HTTP API.
// Callers treat delivery as best-effort: failures are logged, never
// surfaced to the API client.
func SendEmail(to, subject, body string) error {
	apiURL := os.Getenv("ZEPTO_API_URL") // e.g. https://api.zeptomail.com/v1.1/email
	apiKey := os.Getenv("ZEPTO_API_KEY")
	from := os.Getenv("EMAIL_FROM")
	toName := os.Getenv("EMAIL_TO_NAME")

	if apiURL == "" || apiKey == "" || from == "" {
		logrus.Warn("Missing ZEPTO_API_URL, ZEPTO_API_KEY, or EMAIL_FROM")
		return fmt.Errorf("missing required email config")
	}

	payload := emailRequest{
		From: emailAddress{Address: from},
		To: []toRecipient{
			{
				Email: emailWithName{
					Address: to,
					Name:    toName,
				},
			},
		},
		Subject:  subject,
		HtmlBody: body,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", apiKey)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("zeptomail API error: %s", resp.Status)
	}

	logrus.Infof("Email sent to %s", to)
	return nil
}

// NotifyAsync fires an email in the background. Delivery failure is logged
// and otherwise ignored; it never rolls back the operation that triggered it.
func NotifyAsync(to, subject, body string) {
	go func() {
		if err := SendEmail(to, subject, body); err != nil {
			logrus.Warnf("notification to %s failed: %v", to, err)
		}
	}()
}
