package checkout

import (
	"fmt"
	"strings"
)

// CodeLanguage selects the sample-integration target.
type CodeLanguage string

const (
	LangJava   CodeLanguage = "java"
	LangPHP    CodeLanguage = "php"
	LangPython CodeLanguage = "python"
	LangNodeJS CodeLanguage = "nodejs"
)

// ParseCodeLanguage converts a route segment into a CodeLanguage.
func ParseCodeLanguage(s string) (CodeLanguage, error) {
	switch CodeLanguage(strings.ToLower(s)) {
	case LangJava:
		return LangJava, nil
	case LangPHP:
		return LangPHP, nil
	case LangPython:
		return LangPython, nil
	case LangNodeJS:
		return LangNodeJS, nil
	default:
		return "", fmt.Errorf("unsupported code language '%s'", s)
	}
}

// fields whose values are produced inside the generated snippet rather than
// pasted as literals
var codegenSkip = map[string]bool{
	"key": true, "txnid": true, "hash": true,
	"si_details": true, "beneficiarydetail": true, "splitRequest": true, "cart_details": true,
	"si": true, "api_version": true, "pre_authorize": true,
}

// GenerateCode renders a standalone integration snippet in the requested
// language. The snippet re-derives the same hash formula the attempt used,
// with the real key and salt swapped for placeholders.
func GenerateCode(req *Request, a *Attempt, lang CodeLanguage) (string, error) {
	g := codegenInput{req: req, attempt: a}
	switch lang {
	case LangJava:
		return g.java(), nil
	case LangPHP:
		return g.php(), nil
	case LangPython:
		return g.python(), nil
	case LangNodeJS:
		return g.nodejs(), nil
	default:
		return "", fmt.Errorf("unsupported code language '%s'", lang)
	}
}

type codegenInput struct {
	req     *Request
	attempt *Attempt
}

// literalParams returns the params pasted verbatim into the snippet.
func (g codegenInput) literalParams() []Param {
	var out []Param
	for _, p := range g.attempt.Params {
		if codegenSkip[p.Name] {
			continue
		}
		out = append(out, p)
	}
	return out
}

// maskedHashString is the attempt's exact hash input with placeholders in
// place of the live credentials.
func (g codegenInput) maskedHashString() string {
	s := strings.Replace(g.attempt.HashString, g.attempt.Credentials.Salt, "YOUR_MERCHANT_SALT", 1)
	return strings.Replace(s, g.attempt.Credentials.Key, "YOUR_MERCHANT_KEY", 1)
}

func escapeDouble(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return strings.ReplaceAll(s, "\n", `\n`)
}

func escapeSingle(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

func (g codegenInput) java() string {
	var params strings.Builder
	for _, p := range g.literalParams() {
		fmt.Fprintf(&params, "        params.put(%q, \"%s\");\n", p.Name, escapeDouble(p.Value))
	}

	jsonCode := g.javaFlowBlock()

	return fmt.Sprintf(`import java.util.HashMap;
import java.util.Map;
import java.security.MessageDigest;
import java.nio.charset.StandardCharsets;

public class PayUIntegration {
    private static final String MERCHANT_KEY = "YOUR_MERCHANT_KEY";
    private static final String MERCHANT_SALT = "YOUR_MERCHANT_SALT";
    private static final String PAYU_URL = "%s";

    public static void main(String[] args) {
        // Generate unique transaction ID
        String txnid = "txn_" + System.currentTimeMillis();

        // Payment parameters
        Map<String, String> params = new HashMap<>();
        params.put("key", MERCHANT_KEY);
        params.put("txnid", txnid);
%s%s
        // Generate hash
        String hash = generateHash(params);
        params.put("hash", hash);

        // Submit payment (redirect to PayU)
        // In a web application, you would create a form and submit it
        System.out.println("Payment parameters: " + params);
    }

    public static String generateHash(Map<String, String> params) {
        // Build hash string: %s
        String hashString = MERCHANT_KEY + "|" + params.get("txnid") + "|" + params.get("amount") +
                           "|" + params.get("productinfo") + "|" + params.get("firstname") +
                           "|" + params.get("email") + "|" + (params.get("udf1") != null ? params.get("udf1") : "") +
                           "|" + (params.get("udf2") != null ? params.get("udf2") : "") +
                           "|" + (params.get("udf3") != null ? params.get("udf3") : "") +
                           "|" + (params.get("udf4") != null ? params.get("udf4") : "") +
                           "|" + (params.get("udf5") != null ? params.get("udf5") : "") +
                           "||||||" + MERCHANT_SALT;

        try {
            MessageDigest md = MessageDigest.getInstance("SHA-512");
            byte[] hashBytes = md.digest(hashString.getBytes(StandardCharsets.UTF_8));
            StringBuilder sb = new StringBuilder();
            for (byte b : hashBytes) {
                sb.append(String.format("%%02x", b));
            }
            return sb.toString();
        } catch (Exception e) {
            throw new RuntimeException("Error generating hash", e);
        }
    }
}`, g.attempt.Endpoint, params.String(), jsonCode, g.maskedHashString())
}

func (g codegenInput) javaFlowBlock() string {
	req, a := g.req, g.attempt
	switch {
	case req.Flow.Recurring(req.SubType):
		return fmt.Sprintf(`
        // Generate SI Details JSON
        String siDetails = %q;
        params.put("si_details", siDetails);
        params.put("si", "1");
        params.put("api_version", "7");
`, a.Aux.JSON)
	case req.Flow == FlowTPV:
		return fmt.Sprintf(`
        // Generate Beneficiary Detail JSON
        String beneficiaryDetail = %q;
        params.put("beneficiarydetail", beneficiaryDetail);
        params.put("api_version", "6");
`, a.Aux.JSON)
	case req.Flow == FlowUPIOTM:
		return fmt.Sprintf(`
        // Generate SI Details JSON for UPI OTM
        String siDetails = %q;
        params.put("si_details", siDetails);
        params.put("api_version", "7");
        params.put("pre_authorize", "1");
`, a.Aux.JSON)
	case req.Flow == FlowPreAuth:
		return "\n        params.put(\"pre_authorize\", \"1\");\n"
	case req.Flow == FlowSplit:
		return fmt.Sprintf(`
        // Split Payment - Add splitRequest JSON
        params.put("splitRequest", %q);
`, a.Aux.JSON)
	case req.Flow == FlowBankOffer && a.Aux.Kind == AuxCartDetails:
		return fmt.Sprintf(`
        // Bank Offer with SKU - Add cart_details JSON
        params.put("cart_details", %q);
        params.put("api_version", "19");
`, a.Aux.JSON)
	default:
		return "\n"
	}
}

func (g codegenInput) php() string {
	var params strings.Builder
	for _, p := range g.literalParams() {
		fmt.Fprintf(&params, "    '%s' => '%s',\n", p.Name, escapeSingle(p.Value))
	}

	return fmt.Sprintf(`<?php
define('MERCHANT_KEY', 'YOUR_MERCHANT_KEY');
define('MERCHANT_SALT', 'YOUR_MERCHANT_SALT');
define('PAYU_URL', '%s');

function generateTransactionId() {
    return 'txn_' . time();
}

function generateHash($params) {
    // Build hash string: %s
    $hashString = MERCHANT_KEY . '|' . $params['txnid'] . '|' . $params['amount'] .
                  '|' . $params['productinfo'] . '|' . $params['firstname'] .
                  '|' . $params['email'] . '|' . ($params['udf1'] ?? '') .
                  '|' . ($params['udf2'] ?? '') .
                  '|' . ($params['udf3'] ?? '') .
                  '|' . ($params['udf4'] ?? '') .
                  '|' . ($params['udf5'] ?? '') .
                  '||||||' . MERCHANT_SALT;

    return hash('sha512', $hashString);
}

// Generate unique transaction ID
$txnid = generateTransactionId();

// Payment parameters
$params = [
    'key' => MERCHANT_KEY,
    'txnid' => $txnid,
%s%s];

// Generate hash
$params['hash'] = generateHash($params);

// Submit payment (redirect to PayU)
// In a web application, you would create a form and submit it
echo "Payment parameters: ";
print_r($params);
?>`, g.attempt.Endpoint, g.maskedHashString(), params.String(), g.phpFlowBlock())
}

func (g codegenInput) phpFlowBlock() string {
	req, a := g.req, g.attempt
	switch {
	case req.Flow.Recurring(req.SubType):
		return fmt.Sprintf("    'si_details' => '%s',\n    'si' => '1',\n    'api_version' => '7',\n", escapeSingle(a.Aux.JSON))
	case req.Flow == FlowTPV:
		return fmt.Sprintf("    'beneficiarydetail' => '%s',\n    'api_version' => '6',\n", escapeSingle(a.Aux.JSON))
	case req.Flow == FlowUPIOTM:
		return fmt.Sprintf("    'si_details' => '%s',\n    'api_version' => '7',\n    'pre_authorize' => '1',\n", escapeSingle(a.Aux.JSON))
	case req.Flow == FlowPreAuth:
		return "    'pre_authorize' => '1',\n"
	case req.Flow == FlowSplit:
		return fmt.Sprintf("    'splitRequest' => '%s',\n", escapeSingle(a.Aux.JSON))
	case req.Flow == FlowBankOffer && a.Aux.Kind == AuxCartDetails:
		return fmt.Sprintf("    'cart_details' => '%s',\n    'api_version' => '19',\n", escapeSingle(a.Aux.JSON))
	default:
		return ""
	}
}

func (g codegenInput) python() string {
	var params strings.Builder
	for _, p := range g.literalParams() {
		fmt.Fprintf(&params, "    '%s': '%s',\n", p.Name, escapeSingle(p.Value))
	}

	return fmt.Sprintf(`import hashlib
import time
import json

MERCHANT_KEY = 'YOUR_MERCHANT_KEY'
MERCHANT_SALT = 'YOUR_MERCHANT_SALT'
PAYU_URL = '%s'

def generate_transaction_id():
    return f'txn_{int(time.time())}'

def generate_hash(params):
    # Build hash string: %s
    hash_string = f"{MERCHANT_KEY}|{params['txnid']}|{params['amount']}|{params['productinfo']}|{params['firstname']}|{params['email']}|{params.get('udf1', '')}|{params.get('udf2', '')}|{params.get('udf3', '')}|{params.get('udf4', '')}|{params.get('udf5', '')}||||||{MERCHANT_SALT}"
    return hashlib.sha512(hash_string.encode()).hexdigest()

# Generate unique transaction ID
txnid = generate_transaction_id()

# Payment parameters
params = {
    'key': MERCHANT_KEY,
    'txnid': txnid,
%s%s}

# Generate hash
params['hash'] = generate_hash(params)

# Submit payment (redirect to PayU)
# In a web application, you would create a form and submit it
print("Payment parameters:", params)`, g.attempt.Endpoint, g.maskedHashString(), params.String(), g.pythonFlowBlock())
}

func (g codegenInput) pythonFlowBlock() string {
	req, a := g.req, g.attempt
	switch {
	case req.Flow.Recurring(req.SubType):
		return fmt.Sprintf("    'si_details': '%s',\n    'si': '1',\n    'api_version': '7',\n", escapeSingle(a.Aux.JSON))
	case req.Flow == FlowTPV:
		return fmt.Sprintf("    'beneficiarydetail': '%s',\n    'api_version': '6',\n", escapeSingle(a.Aux.JSON))
	case req.Flow == FlowUPIOTM:
		return fmt.Sprintf("    'si_details': '%s',\n    'api_version': '7',\n    'pre_authorize': '1',\n", escapeSingle(a.Aux.JSON))
	case req.Flow == FlowPreAuth:
		return "    'pre_authorize': '1',\n"
	case req.Flow == FlowSplit:
		return fmt.Sprintf("    'splitRequest': '%s',\n", escapeSingle(a.Aux.JSON))
	case req.Flow == FlowBankOffer && a.Aux.Kind == AuxCartDetails:
		return fmt.Sprintf("    'cart_details': '%s',\n    'api_version': '19',\n", escapeSingle(a.Aux.JSON))
	default:
		return ""
	}
}

func (g codegenInput) nodejs() string {
	var params strings.Builder
	for _, p := range g.literalParams() {
		fmt.Fprintf(&params, "    %s: '%s',\n", p.Name, escapeSingle(p.Value))
	}

	return fmt.Sprintf(`const crypto = require('crypto');

const MERCHANT_KEY = 'YOUR_MERCHANT_KEY';
const MERCHANT_SALT = 'YOUR_MERCHANT_SALT';
const PAYU_URL = '%s';

function generateTransactionId() {
    return 'txn_' + Date.now();
}

function generateHash(params) {
    // Build hash string: %s
    const hashString = MERCHANT_KEY + '|' + params.txnid + '|' + params.amount +
                      '|' + params.productinfo + '|' + params.firstname +
                      '|' + params.email + '|' + (params.udf1 || '') +
                      '|' + (params.udf2 || '') +
                      '|' + (params.udf3 || '') +
                      '|' + (params.udf4 || '') +
                      '|' + (params.udf5 || '') +
                      '||||||' + MERCHANT_SALT;

    return crypto.createHash('sha512').update(hashString).digest('hex');
}

// Generate unique transaction ID
const txnid = generateTransactionId();

// Payment parameters
const params = {
    key: MERCHANT_KEY,
    txnid: txnid,
%s%s};

// Generate hash
params.hash = generateHash(params);

// Submit payment (redirect to PayU)
// In a web application, you would create a form and submit it
console.log('Payment parameters:', params);`, g.attempt.Endpoint, g.maskedHashString(), params.String(), g.nodeFlowBlock())
}

func (g codegenInput) nodeFlowBlock() string {
	req, a := g.req, g.attempt
	switch {
	case req.Flow.Recurring(req.SubType):
		return fmt.Sprintf("    si_details: '%s',\n    si: '1',\n    api_version: '7',\n", escapeSingle(a.Aux.JSON))
	case req.Flow == FlowTPV:
		return fmt.Sprintf("    beneficiarydetail: '%s',\n    api_version: '6',\n", escapeSingle(a.Aux.JSON))
	case req.Flow == FlowUPIOTM:
		return fmt.Sprintf("    si_details: '%s',\n    api_version: '7',\n    pre_authorize: '1',\n", escapeSingle(a.Aux.JSON))
	case req.Flow == FlowPreAuth:
		return "    pre_authorize: '1',\n"
	case req.Flow == FlowSplit:
		return fmt.Sprintf("    splitRequest: '%s',\n", escapeSingle(a.Aux.JSON))
	case req.Flow == FlowBankOffer && a.Aux.Kind == AuxCartDetails:
		return fmt.Sprintf("    cart_details: '%s',\n    api_version: '19',\n", escapeSingle(a.Aux.JSON))
	default:
		return ""
	}
}
