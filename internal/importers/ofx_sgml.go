package importers

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	stmtTrnPattern  = regexp.MustCompile(`(?is)<STMTTRN>(.*?)</STMTTRN>`)
	ccStmtPattern   = regexp.MustCompile(`(?i)<CCSTMTRS>`)
	ofxRootPattern  = regexp.MustCompile(`(?i)<OFX>`)
	tagValuePattern = map[string]*regexp.Regexp{}
)

func init() {
	for _, tag := range []string{"TRNTYPE", "DTPOSTED", "TRNAMT", "FITID", "NAME", "MEMO", "ACCTID", "ACCTTYPE", "ORG", "DTSTART", "DTEND"} {
		tagValuePattern[tag] = regexp.MustCompile(`(?i)<` + tag + `>\s*([^<\r\n]*)`)
	}
}

// scanSGML reads STMTTRN blocks with regular expressions. It accepts OFX 1.x
// SGML where element end tags are omitted as well as well-formed XML.
func scanSGML(data []byte) (statementHeader, []statementNode, error) {
	if !utf8.Valid(data) {
		if decoded, err := Decode(data, EncodingWindows1252); err == nil {
			data = decoded
		}
	}
	text := string(data)

	if !ofxRootPattern.MatchString(text) {
		return statementHeader{}, nil, fmt.Errorf("%w: no OFX root element", ErrMalformedFile)
	}

	blocks := stmtTrnPattern.FindAllStringSubmatch(text, -1)
	if len(blocks) == 0 && !bytes.Contains(bytes.ToUpper(data), []byte("<BANKTRANLIST>")) {
		return statementHeader{}, nil, fmt.Errorf("%w: no statement transactions", ErrMalformedFile)
	}

	header := statementHeader{
		AccountID:   tagValue(text, "ACCTID"),
		AccountType: tagValue(text, "ACCTTYPE"),
		Org:         tagValue(text, "ORG"),
		CreditCard:  ccStmtPattern.MatchString(text),
		DtStart:     tagValue(text, "DTSTART"),
		DtEnd:       tagValue(text, "DTEND"),
	}

	nodes := make([]statementNode, 0, len(blocks))
	for _, block := range blocks {
		body := block[1]
		nodes = append(nodes, statementNode{
			TrnType:  tagValue(body, "TRNTYPE"),
			DtPosted: tagValue(body, "DTPOSTED"),
			TrnAmt:   tagValue(body, "TRNAMT"),
			FitID:    tagValue(body, "FITID"),
			Name:     unescapeSGML(tagValue(body, "NAME")),
			Memo:     unescapeSGML(tagValue(body, "MEMO")),
		})
	}
	return header, nodes, nil
}

func tagValue(text, tag string) string {
	m := tagValuePattern[tag].FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

var sgmlEntities = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'")

func unescapeSGML(s string) string {
	return sgmlEntities.Replace(s)
}

// SniffFormat reports "ofx" for statement files and "csv" for everything else.
func SniffFormat(data []byte) string {
	head := data
	if len(head) > 2048 {
		head = head[:2048]
	}
	upper := bytes.ToUpper(head)
	if bytes.Contains(upper, []byte("OFXHEADER")) || bytes.Contains(upper, []byte("<OFX>")) {
		return "ofx"
	}
	return "csv"
}
