package email

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(cfg SMTPConfig) (*EmailServiceImpl, *bytes.Buffer) {
	var buf bytes.Buffer
	svc := NewEmailService(cfg, zerolog.New(&buf)).(*EmailServiceImpl)
	return svc, &buf
}

func TestUnconfiguredSMTPOnlyLogs(t *testing.T) {
	svc, buf := newTestService(SMTPConfig{})
	called := false
	svc.send = func(string, []byte) error { called = true; return nil }

	require.NoError(t, svc.SendContactAcknowledgement("a@b.co", "Ayşe", "Kayıt"))
	assert.False(t, called)
	assert.Contains(t, buf.String(), "contact acknowledgement not sent")
}

func TestDecisionEmailContent(t *testing.T) {
	svc, _ := newTestService(SMTPConfig{Username: "u", Password: "p", FromName: "Sempozyum", FromEmail: "noreply@sempozyum.org", BaseURL: "https://sempozyum.org"})

	var sentTo string
	var sent []byte
	svc.send = func(to string, msg []byte) error { sentTo, sent = to, msg; return nil }

	require.NoError(t, svc.SendDecisionEmail("yazar@uni.edu.tr", "Ali <b>", "Derin Öğrenme", "ACCEPTED"))
	assert.Equal(t, "yazar@uni.edu.tr", sentTo)

	body := string(sent)
	assert.Contains(t, body, "From: Sempozyum <noreply@sempozyum.org>\r\n")
	assert.Contains(t, body, "Content-Type: text/html; charset=UTF-8")
	assert.Contains(t, body, "kabul edilmiştir")
	assert.Contains(t, body, "Ali &lt;b&gt;")
}

func TestSendErrorIsReturned(t *testing.T) {
	svc, _ := newTestService(SMTPConfig{Username: "u", Password: "p"})
	svc.send = func(string, []byte) error { return errors.New("connection refused") }

	err := svc.SendDecisionEmail("x@y.co", "X", "T", "REJECTED")
	assert.EqualError(t, err, "connection refused")
}
