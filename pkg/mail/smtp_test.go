package mail

import (
	"context"
	"errors"
	"net/smtp"
	"os"
	"strings"
	"testing"

	"HerShield/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestSMTPClientSend(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	orig := sendMailHook
	sendMailHook = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr = addr
		gotFrom = from
		gotTo = to
		gotMsg = msg
		return nil
	}
	defer func() { sendMailHook = orig }()

	client := &SMTPClient{
		host:     "smtp.example.com",
		port:     587,
		user:     "sender@example.com",
		password: "secret",
		from:     "sender@example.com",
		fromName: "TEAM HerShield",
	}

	err := client.Send(context.Background(), "bob@example.com", "EMERGENCY", "<p>hello</p>")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if gotAddr != "smtp.example.com:587" {
		t.Errorf("addr = %q", gotAddr)
	}
	if gotFrom != "sender@example.com" {
		t.Errorf("from = %q", gotFrom)
	}
	if len(gotTo) != 1 || gotTo[0] != "bob@example.com" {
		t.Errorf("to = %v", gotTo)
	}

	msg := string(gotMsg)
	for _, fragment := range []string{
		"Subject: EMERGENCY",
		"From: TEAM HerShield <sender@example.com>",
		"Content-Type: text/html",
		"<p>hello</p>",
	} {
		if !strings.Contains(msg, fragment) {
			t.Errorf("message missing %q:\n%s", fragment, msg)
		}
	}
}

func TestSMTPClientSendError(t *testing.T) {
	orig := sendMailHook
	sendMailHook = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		return errors.New("connection refused")
	}
	defer func() { sendMailHook = orig }()

	client := &SMTPClient{host: "smtp.example.com", port: 587}

	err := client.Send(context.Background(), "bob@example.com", "EMERGENCY", "body")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("error should wrap the transport failure, got %v", err)
	}
}
