package service

import (
	"context"
	"errors"
	"testing"

	"HerShield/internal/model"
	pkgerrors "HerShield/pkg/errors"
	"HerShield/pkg/mail"
	"HerShield/pkg/sms"
)

type fakeDirectory struct {
	owner    string
	contacts []model.Contact
	err      error
}

func (f *fakeDirectory) Snapshot(ctx context.Context, userID string) (string, []model.Contact, error) {
	return f.owner, f.contacts, f.err
}

type fakeLocations struct {
	loc *model.LocationReference
	err error
}

func (f *fakeLocations) CurrentLocation(ctx context.Context, userID string) (*model.LocationReference, error) {
	return f.loc, f.err
}

func TestTriggerEmptyContactList(t *testing.T) {
	loc := model.NewLocationReference(1, 2)
	svc := NewEmergency(
		&fakeDirectory{owner: "alice"},
		&fakeLocations{loc: &loc},
		NewFanout(mail.NewMockClient(), sms.NewMockClient(), ""),
	)

	_, err := svc.Trigger(context.Background(), "42")
	if !errors.Is(err, pkgerrors.EmptyContactList) {
		t.Errorf("err = %v, want EmptyContactList", err)
	}
}

func TestTriggerLocationUnavailable(t *testing.T) {
	mailMock := mail.NewMockClient()
	smsMock := sms.NewMockClient()
	svc := NewEmergency(
		&fakeDirectory{
			owner:    "alice",
			contacts: []model.Contact{{Name: "Bob", Email: "bob@example.com", MobileNo: "+16502530000"}},
		},
		&fakeLocations{err: pkgerrors.LocationUnavailable},
		NewFanout(mailMock, smsMock, ""),
	)

	_, err := svc.Trigger(context.Background(), "42")
	if !errors.Is(err, pkgerrors.LocationUnavailable) {
		t.Errorf("err = %v, want LocationUnavailable", err)
	}

	// 前置失败不触碰任何渠道
	if len(mailMock.Calls) != 0 || len(smsMock.Calls) != 0 {
		t.Error("no channel should be touched when location is unavailable")
	}
}

func TestTriggerSuccess(t *testing.T) {
	mailMock := mail.NewMockClient()
	smsMock := sms.NewMockClient()
	loc := model.NewLocationReference(48.8566, 2.3522)
	svc := NewEmergency(
		&fakeDirectory{
			owner: "alice",
			contacts: []model.Contact{
				{Name: "Bob", Email: "bob@example.com", MobileNo: "+16502530000"},
				{Name: "Carol", Email: "carol@example.com", MobileNo: "+442071838750"},
			},
		},
		&fakeLocations{loc: &loc},
		NewFanout(mailMock, smsMock, ""),
	)

	resp, err := svc.Trigger(context.Background(), "42")
	if err != nil {
		t.Fatalf("Trigger failed: %v", err)
	}

	if resp.Overall != model.BroadcastSucceeded {
		t.Errorf("Overall = %q, want succeeded", resp.Overall)
	}
	if resp.BroadcastID == "" {
		t.Error("broadcast id should be set")
	}
	if len(resp.Outcomes) != 3 {
		t.Errorf("outcomes = %d, want 3", len(resp.Outcomes))
	}
}
