package importers

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"fintrack/internal/models"
	"fintrack/internal/parsing"
)

// Statement is a parsed OFX/QFX statement.
type Statement struct {
	AccountName   string                        `json:"account_name"`
	AccountType   string                        `json:"account_type"`
	AccountNumber string                        `json:"account_number,omitempty"`
	BankName      string                        `json:"bank_name,omitempty"`
	StartDate     *time.Time                    `json:"start_date,omitempty"`
	EndDate       *time.Time                    `json:"end_date,omitempty"`
	Transactions  []models.CanonicalTransaction `json:"transactions"`
	Errors        []*RowError                   `json:"errors"`
}

// statementNode is one STMTTRN block before sign normalization.
type statementNode struct {
	TrnType  string
	DtPosted string
	TrnAmt   string
	FitID    string
	Name     string
	Memo     string
}

type statementHeader struct {
	AccountID   string
	AccountType string
	Org         string
	CreditCard  bool
	DtStart     string
	DtEnd       string
}

type OFXImporter struct {
	logger *slog.Logger
}

func NewOFXImporter(logger *slog.Logger) *OFXImporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &OFXImporter{logger: logger}
}

// Parse reads an OFX 1.x (SGML) or 2.x (XML) statement. ofxgo is tried first;
// files it rejects, which is common for bank-generated SGML, are read with a
// lenient tag scanner. ErrMalformedFile is returned when neither finds a
// statement.
func (i *OFXImporter) Parse(data []byte) (*Statement, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrMalformedFile)
	}

	header, nodes, err := parseWithOFXGo(data)
	if err != nil {
		i.logger.Debug("ofxgo parse failed, falling back to sgml scanner", slog.String("error", err.Error()))
		header, nodes, err = scanSGML(data)
		if err != nil {
			return nil, err
		}
	}

	return buildStatement(header, nodes), nil
}

func parseWithOFXGo(data []byte) (statementHeader, []statementNode, error) {
	resp, err := ofxgo.ParseResponse(bytes.NewReader(data))
	if err != nil {
		return statementHeader{}, nil, err
	}

	header := statementHeader{Org: string(resp.Signon.Org)}
	var list *ofxgo.TransactionList

	switch {
	case len(resp.Bank) > 0:
		stmt, ok := resp.Bank[0].(*ofxgo.StatementResponse)
		if !ok {
			return header, nil, fmt.Errorf("unexpected bank message %T", resp.Bank[0])
		}
		header.AccountID = string(stmt.BankAcctFrom.AcctID)
		header.AccountType = stmt.BankAcctFrom.AcctType.String()
		list = stmt.BankTranList
	case len(resp.CreditCard) > 0:
		stmt, ok := resp.CreditCard[0].(*ofxgo.CCStatementResponse)
		if !ok {
			return header, nil, fmt.Errorf("unexpected credit card message %T", resp.CreditCard[0])
		}
		header.AccountID = string(stmt.CCAcctFrom.AcctID)
		header.CreditCard = true
		list = stmt.BankTranList
	default:
		return header, nil, fmt.Errorf("no statement in response")
	}

	if list == nil {
		return header, nil, fmt.Errorf("statement has no transaction list")
	}
	header.DtStart = list.DtStart.Format("20060102")
	header.DtEnd = list.DtEnd.Format("20060102")

	nodes := make([]statementNode, 0, len(list.Transactions))
	for _, tran := range list.Transactions {
		name := string(tran.Name)
		if name == "" && tran.Payee != nil {
			name = string(tran.Payee.Name)
		}
		nodes = append(nodes, statementNode{
			TrnType:  tran.TrnType.String(),
			DtPosted: tran.DtPosted.Format("20060102"),
			TrnAmt:   tran.TrnAmt.FloatString(2),
			FitID:    string(tran.FiTID),
			Name:     name,
			Memo:     string(tran.Memo),
		})
	}
	return header, nodes, nil
}

func buildStatement(header statementHeader, nodes []statementNode) *Statement {
	accountType := ofxAccountType(header)
	stmt := &Statement{
		AccountType:   accountType,
		AccountNumber: header.AccountID,
		BankName:      header.Org,
		AccountName:   accountName(header.Org, accountType, header.AccountID),
		StartDate:     ofxDate(header.DtStart),
		EndDate:       ofxDate(header.DtEnd),
		Transactions:  make([]models.CanonicalTransaction, 0, len(nodes)),
	}
	liability := models.IsLiabilityAccountType(accountType)

	for n, node := range nodes {
		row := n + 1
		date, err := parsing.ParseDate(compactDate(node.DtPosted))
		if err != nil {
			stmt.Errors = append(stmt.Errors, &RowError{Row: row, Field: "DTPOSTED", Value: node.DtPosted, Err: err})
			continue
		}
		amount, err := parsing.ParseAmount(node.TrnAmt)
		if err != nil {
			stmt.Errors = append(stmt.Errors, &RowError{Row: row, Field: "TRNAMT", Value: node.TrnAmt, Err: err})
			continue
		}

		ct := models.NewCanonicalTransaction(date, normalizeSign(amount, liability), row)
		ct.Description = node.Name
		if ct.Description == "" {
			ct.Description = node.Memo
		}
		ct.Description = models.Truncate(ct.Description, models.MaxDescriptionLength)
		ct.PayeeText = models.Truncate(node.Name, models.MaxPayeeTextLength)
		if node.Memo != "" && node.Memo != ct.Description {
			ct.Notes = models.Truncate(node.Memo, models.MaxNotesLength)
		}
		ct.ExternalID = node.FitID
		stmt.Transactions = append(stmt.Transactions, ct)
	}
	return stmt
}

// normalizeSign maps the statement's native sign onto cash-flow sign. On
// asset accounts a negative amount is already a debit. On credit card and
// credit line statements the sign describes balance impact, so a positive
// charge is a debit and a negative payment is a credit.
func normalizeSign(amount decimal.Decimal, liability bool) decimal.Decimal {
	if liability {
		return amount.Neg()
	}
	return amount
}

func ofxAccountType(h statementHeader) string {
	if h.CreditCard {
		return models.AccountTypeCreditCard
	}
	switch strings.ToUpper(h.AccountType) {
	case "SAVINGS":
		return models.AccountTypeSavings
	case "MONEYMRKT":
		return models.AccountTypeMoneyMarket
	case "CREDITLINE":
		return models.AccountTypeCreditLine
	default:
		return models.AccountTypeChecking
	}
}

func accountName(org, accountType, accountID string) string {
	label := strings.ReplaceAll(accountType, "_", " ")
	if label != "" {
		label = strings.ToUpper(label[:1]) + label[1:]
	}
	if org != "" {
		label = org + " " + label
	}
	if len(accountID) >= 4 {
		label += " ..." + accountID[len(accountID)-4:]
	}
	return label
}

// compactDate keeps the YYYYMMDD prefix of an OFX datetime such as
// "20240105120000.000[-5:EST]".
func compactDate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 8 {
		return s[:8]
	}
	return s
}

func ofxDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := parsing.ParseDate(compactDate(s))
	if err != nil {
		return nil
	}
	return &t
}
