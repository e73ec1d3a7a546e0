package checkout

import (
	"strings"
	"testing"
)

func buildTestAttempt(t *testing.T, mutate func(*Request)) *Attempt {
	t.Helper()
	console := NewConsole(testGateway())
	req := baseRequest(FlowNonSeamless)
	if mutate != nil {
		mutate(req)
	}
	attempt, err := console.Build(req)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return attempt
}

func TestDebugTable(t *testing.T) {
	attempt := buildTestAttempt(t, nil)
	info := attempt.DebugTable()

	if info.Flow != FlowNonSeamless {
		t.Errorf("flow = %s", info.Flow)
	}
	if info.HashLength != 128 {
		t.Errorf("hash length = %d, want 128", info.HashLength)
	}
	if info.Hash != attempt.Hash {
		t.Error("debug info should carry the full hash")
	}

	var hashRow *DebugRow
	for i := range info.Rows {
		if info.Rows[i].Name == "hash" {
			hashRow = &info.Rows[i]
		}
	}
	if hashRow == nil {
		t.Fatal("no hash row in debug table")
	}
	if !strings.HasSuffix(hashRow.Value, "... (truncated)") {
		t.Errorf("hash row should be truncated, got %q", hashRow.Value)
	}
	if hashRow.Requirement != Mandatory {
		t.Errorf("hash requirement = %s, want mandatory", hashRow.Requirement)
	}
}

func TestDebugTable_SaltNeverLeaks(t *testing.T) {
	attempt := buildTestAttempt(t, nil)
	info := attempt.DebugTable()

	salt := attempt.Credentials.Salt
	if strings.Contains(info.MaskedHashString, salt) {
		t.Error("masked hash string contains the raw salt")
	}
	if strings.Contains(info.MaskedSalt, salt) {
		t.Error("masked salt contains the raw salt")
	}
	if !strings.HasPrefix(info.MaskedSalt, "***") {
		t.Errorf("masked salt = %q, want *** prefix", info.MaskedSalt)
	}
	if !strings.HasSuffix(info.MaskedHashString, info.MaskedSalt) {
		t.Errorf("masked hash string should end with the masked salt: %s", info.MaskedHashString)
	}
	for _, row := range info.Rows {
		if strings.Contains(row.Value, salt) {
			t.Errorf("row %s contains the raw salt", row.Name)
		}
	}
}

func TestCurlCommand(t *testing.T) {
	attempt := buildTestAttempt(t, nil)
	cmd := attempt.CurlCommand()

	if !strings.HasPrefix(cmd, `curl -X POST "https://test.payu.in/_payment" \`) {
		t.Errorf("unexpected first line: %s", cmd)
	}
	if !strings.Contains(cmd, `-H "Content-Type: application/x-www-form-urlencoded"`) {
		t.Error("missing content type header")
	}
	if !strings.Contains(cmd, `-d "key=gw_key"`) {
		t.Errorf("missing plain key field:\n%s", cmd)
	}
	if !strings.Contains(cmd, `-d "hash=`+attempt.Hash) {
		t.Error("curl should carry the full untruncated hash")
	}

	lines := strings.Split(cmd, "\n")
	last := lines[len(lines)-1]
	if strings.HasSuffix(last, "\\") {
		t.Errorf("last line must not continue: %q", last)
	}
	for _, line := range lines[:len(lines)-1] {
		if !strings.HasSuffix(line, "\\") {
			t.Errorf("non-final line missing continuation: %q", line)
		}
	}
}

func TestCurlCommand_JSONFieldQuoting(t *testing.T) {
	subAttempt := buildTestAttempt(t, func(r *Request) {
		r.Flow = FlowSubscription
		r.PaymentStartDate = "2026-09-01"
	})
	cmd := subAttempt.CurlCommand()
	if !strings.Contains(cmd, "-d 'si_details="+subAttempt.Aux.JSON+"'") {
		t.Errorf("si_details should be single-quoted:\n%s", cmd)
	}

	splitAttempt := buildTestAttempt(t, func(r *Request) {
		r.Flow = FlowSplit
		r.SplitRows = []SplitRow{{MerchantKey: "childA", TxnID: "sub_1", Amount: "100.00"}}
	})
	cmd = splitAttempt.CurlCommand()
	if !strings.Contains(cmd, "--data-urlencode 'splitRequest="+splitAttempt.Aux.JSON+"'") {
		t.Errorf("splitRequest should be urlencoded:\n%s", cmd)
	}
}

func TestFormFields(t *testing.T) {
	attempt := buildTestAttempt(t, nil)
	fields := attempt.FormFields()
	if len(fields) != len(attempt.Params) {
		t.Errorf("form fields = %d entries, want %d", len(fields), len(attempt.Params))
	}
}
