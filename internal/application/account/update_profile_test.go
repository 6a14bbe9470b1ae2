package account

import (
	"context"
	"testing"
)

func strptr(s string) *string { return &s }

func TestUpdateProfile_UnknownAccount_NotFound(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newSvcForTest(t)

	_, err := svc.UpdateProfile(context.Background(), Caller{AccountID: "missing", Role: "user"}, ProfileUpdate{
		Username: strptr("newname"),
	})
	requireErrCode(t, err, "account_not_found")
}

func TestUpdateProfile_PartialUpdate_LeavesOtherFieldsUntouched(t *testing.T) {
	t.Parallel()

	svc, repo, _, _ := newSvcForTest(t)
	id, _ := registerAlice(t, svc)
	before := repo.byID[id]

	v, err := svc.UpdateProfile(context.Background(), Caller{AccountID: id, Role: "user"}, ProfileUpdate{
		Username: strptr("alice_two"),
	})
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if v.Username != "alice_two" {
		t.Fatalf("expected updated username, got %q", v.Username)
	}

	after := repo.byID[id]
	if after.Email != before.Email || after.PasswordHash != before.PasswordHash {
		t.Fatalf("unspecified fields must be untouched")
	}
}

func TestUpdateProfile_FieldsValidatedLikeRegistration(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newSvcForTest(t)
	id, _ := registerAlice(t, svc)
	caller := Caller{AccountID: id, Role: "user"}

	_, err := svc.UpdateProfile(context.Background(), caller, ProfileUpdate{Username: strptr("ab")})
	requireErrCode(t, err, "invalid_field")
	_, err = svc.UpdateProfile(context.Background(), caller, ProfileUpdate{Email: strptr("nope")})
	requireErrCode(t, err, "invalid_field")
	_, err = svc.UpdateProfile(context.Background(), caller, ProfileUpdate{Password: strptr("short")})
	requireErrCode(t, err, "invalid_field")
}

func TestUpdateProfile_CollisionWithOtherAccount_Conflict(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newSvcForTest(t)
	id, _ := registerAlice(t, svc)
	if _, err := svc.Register(context.Background(), "bob", "b@x.com", "secret1", ""); err != nil {
		t.Fatalf("register bob: %v", err)
	}
	caller := Caller{AccountID: id, Role: "user"}

	_, err := svc.UpdateProfile(context.Background(), caller, ProfileUpdate{Username: strptr("bob")})
	requireErrCode(t, err, "username_already_exists")
	_, err = svc.UpdateProfile(context.Background(), caller, ProfileUpdate{Email: strptr("b@x.com")})
	requireErrCode(t, err, "email_already_exists")
}

func TestUpdateProfile_SettingOwnValuesAgain_NoConflict(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newSvcForTest(t)
	id, email := registerAlice(t, svc)

	_, err := svc.UpdateProfile(context.Background(), Caller{AccountID: id, Role: "user"}, ProfileUpdate{
		Username: strptr("alice"),
		Email:    strptr(email),
	})
	if err != nil {
		t.Fatalf("own values must not collide with self, got %v", err)
	}
}

func TestUpdateProfile_PasswordIsRehashed(t *testing.T) {
	t.Parallel()

	svc, repo, _, _ := newSvcForTest(t)
	id, _ := registerAlice(t, svc)

	if _, err := svc.UpdateProfile(context.Background(), Caller{AccountID: id, Role: "user"}, ProfileUpdate{
		Password: strptr("newsecret"),
	}); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	if repo.byID[id].PasswordHash != "hash:newsecret" {
		t.Fatalf("expected rehash, got %q", repo.byID[id].PasswordHash)
	}
}
