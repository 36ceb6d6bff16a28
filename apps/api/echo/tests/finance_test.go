package tests

import (
	"net/http"
	"testing"

	"github.com/abovethehill/churchadmin/core/finance"
)

func Test_financeApi_endToEnd(t *testing.T) {
	app, mailSvc := setup(t)
	token := getToken(t)

	// create; defaults apply and a report goes out
	req, rec := newAuthRequest(http.MethodPost, "/api/finance", token,
		[]byte(`{"offeringAmount": 1000, "titheAmount": 500}`))
	env := do(t, app, req, rec, http.StatusCreated)

	var tx finance.Transaction
	decodeData(t, env, &tx)
	if tx.Total() != 1500 {
		t.Errorf("total = %v; want 1500", tx.Total())
	}
	if tx.PaymentMethod != finance.MethodCash {
		t.Errorf("paymentMethod = %q; want cash", tx.PaymentMethod)
	}
	if tx.Status != finance.StatusCompleted {
		t.Errorf("status = %q; want completed", tx.Status)
	}
	if len(mailSvc.SentMessages) != 1 {
		t.Errorf("len(SentMessages) = %v; want 1", len(mailSvc.SentMessages))
	}

	// summary buckets both windows
	req, rec = newAuthRequest(http.MethodGet, "/api/finance/summary", token)
	env = do(t, app, req, rec, http.StatusOK)
	var summary finance.Summary
	decodeData(t, env, &summary)
	if summary.Monthly.TotalAmount != 1500 || summary.Today.TotalAmount != 1500 {
		t.Errorf("summary = %+v; want 1500 in both windows", summary)
	}

	// update
	req, rec = newAuthRequest(http.MethodPut, "/api/finance/"+tx.ID.Hex(), token,
		[]byte(`{"offeringAmount": 800, "status": "pending"}`))
	env = do(t, app, req, rec, http.StatusOK)
	decodeData(t, env, &tx)
	if tx.OfferingAmount != 800 || tx.Status != finance.StatusPending {
		t.Errorf("tx = %+v; want offering 800, status pending", tx)
	}

	// send the finance report
	req, rec = newAuthRequest(http.MethodPost, "/api/finance/"+tx.ID.Hex()+"/send", token)
	env = do(t, app, req, rec, http.StatusOK)
	if env.Message != "Finance report sent successfully" {
		t.Errorf("message = %q", env.Message)
	}

	// delete
	req, rec = newAuthRequest(http.MethodDelete, "/api/finance/"+tx.ID.Hex(), token)
	env = do(t, app, req, rec, http.StatusOK)
	if env.Message != "Finance record deleted successfully" {
		t.Errorf("message = %q", env.Message)
	}
}

func Test_financeApi_rejectsNegativeAmounts(t *testing.T) {
	app, mailSvc := setup(t)
	token := getToken(t)

	req, rec := newAuthRequest(http.MethodPost, "/api/finance", token,
		[]byte(`{"offeringAmount": -100}`))
	env := do(t, app, req, rec, http.StatusBadRequest)
	if flds := fieldErrors(t, env); flds["offeringAmount"] != "offeringAmount cannot be negative" {
		t.Errorf("error.offeringAmount = %q", flds["offeringAmount"])
	}

	// nothing was written and no report went out
	req, rec = newAuthRequest(http.MethodGet, "/api/finance", token)
	env = do(t, app, req, rec, http.StatusOK)
	var txs []finance.Transaction
	decodeData(t, env, &txs)
	if len(txs) != 0 {
		t.Errorf("len(txs) = %v; want 0", len(txs))
	}
	if len(mailSvc.SentMessages) != 0 {
		t.Errorf("len(SentMessages) = %v; want 0", len(mailSvc.SentMessages))
	}
}

func Test_financeApi_rejectsBadEnums(t *testing.T) {
	app, _ := setup(t)
	token := getToken(t)

	req, rec := newAuthRequest(http.MethodPost, "/api/finance", token,
		[]byte(`{"paymentMethod": "barter"}`))
	env := do(t, app, req, rec, http.StatusBadRequest)
	if flds := fieldErrors(t, env); flds["paymentMethod"] == "" {
		t.Error("expected a paymentMethod field error")
	}

	req, rec = newAuthRequest(http.MethodPut, "/api/finance/not-a-hex-id", token, []byte(`{}`))
	env = do(t, app, req, rec, http.StatusNotFound)
	if env.Message != finance.ErrNotFound.Error() {
		t.Errorf("message = %q; want %q", env.Message, finance.ErrNotFound.Error())
	}
}
