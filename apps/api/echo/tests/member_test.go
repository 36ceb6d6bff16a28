package tests

import (
	"net/http"
	"testing"

	"github.com/abovethehill/churchadmin/core/member"
)

func Test_memberApi_endToEnd(t *testing.T) {
	app, _ := setup(t)
	token := getToken(t)

	// create with minimal payload; defaults fill the rest
	req, rec := newAuthRequest(http.MethodPost, "/api/members", token, []byte(`{
		"firstName": "Ada",
		"lastName": "Obi",
		"phone": "+2348012345678"
	}`))
	env := do(t, app, req, rec, http.StatusCreated)

	var mbr member.Member
	decodeData(t, env, &mbr)
	if mbr.Gender != member.GenderOther {
		t.Errorf("gender = %q; want other", mbr.Gender)
	}
	if mbr.MembershipStatus != member.StatusActive {
		t.Errorf("membershipStatus = %q; want active", mbr.MembershipStatus)
	}
	if mbr.Address.Street != "N/A" || mbr.Address.City != "N/A" {
		t.Errorf("address = %+v; want N/A placeholders", mbr.Address)
	}

	// fetch one
	req, rec = newAuthRequest(http.MethodGet, "/api/members/"+mbr.ID.Hex(), token)
	env = do(t, app, req, rec, http.StatusOK)
	decodeData(t, env, &mbr)
	if mbr.FirstName != "Ada" {
		t.Errorf("firstName = %q; want Ada", mbr.FirstName)
	}

	// update
	req, rec = newAuthRequest(http.MethodPut, "/api/members/"+mbr.ID.Hex(), token,
		[]byte(`{"membershipStatus": "inactive", "department": ["choir"]}`))
	env = do(t, app, req, rec, http.StatusOK)
	decodeData(t, env, &mbr)
	if mbr.MembershipStatus != member.StatusInactive {
		t.Errorf("membershipStatus = %q; want inactive", mbr.MembershipStatus)
	}
	if mbr.FirstName != "Ada" {
		t.Errorf("firstName = %q; want kept", mbr.FirstName)
	}

	// list
	req, rec = newAuthRequest(http.MethodGet, "/api/members", token)
	env = do(t, app, req, rec, http.StatusOK)
	var members []member.Member
	decodeData(t, env, &members)
	if len(members) != 1 {
		t.Fatalf("len(members) = %v; want 1", len(members))
	}

	// delete
	req, rec = newAuthRequest(http.MethodDelete, "/api/members/"+mbr.ID.Hex(), token)
	env = do(t, app, req, rec, http.StatusOK)
	if env.Message != "Member deleted successfully" {
		t.Errorf("message = %q", env.Message)
	}
	req, rec = newAuthRequest(http.MethodGet, "/api/members/"+mbr.ID.Hex(), token)
	env = do(t, app, req, rec, http.StatusNotFound)
	if env.Message != member.ErrNotFound.Error() {
		t.Errorf("message = %q; want %q", env.Message, member.ErrNotFound.Error())
	}
}

func Test_memberApi_validation(t *testing.T) {
	app, _ := setup(t)
	token := getToken(t)

	tests := []struct {
		name      string
		body      string
		wantField string
		wantMsg   string
	}{
		{
			name:      "missing firstName",
			body:      `{"lastName": "Obi", "phone": "+2348012345678"}`,
			wantField: "firstName",
			wantMsg:   "this field is required",
		},
		{
			name:      "bad phone",
			body:      `{"firstName": "Ada", "lastName": "Obi", "phone": "not-a-phone"}`,
			wantField: "phone",
			wantMsg:   "not-a-phone is not a valid phone number",
		},
		{
			name:      "bad gender",
			body:      `{"firstName": "Ada", "lastName": "Obi", "phone": "+2348012345678", "gender": "boss"}`,
			wantField: "gender",
			wantMsg:   "boss is not a valid gender",
		},
		{
			name:      "bad dateOfBirth",
			body:      `{"firstName": "Ada", "lastName": "Obi", "phone": "+2348012345678", "dateOfBirth": "lol"}`,
			wantField: "dateOfBirth",
			wantMsg:   "Please provide a valid date of birth",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/api/members", token, []byte(tt.body))
			env := do(t, app, req, rec, http.StatusBadRequest)
			if flds := fieldErrors(t, env); flds[tt.wantField] != tt.wantMsg {
				t.Errorf("error.%s = %q; want %q", tt.wantField, flds[tt.wantField], tt.wantMsg)
			}
		})
	}
}
