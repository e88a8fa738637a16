package importers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"fintrack/internal/models"
)

const checkingOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240310120000
<LANGUAGE>ENG
<FI>
<ORG>FIRSTBANK
<FID>1001
</FI>
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>121000248
<ACCTID>000123456789
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240301
<DTEND>20240310
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240302120000.000[-5:EST]
<TRNAMT>-42.50
<FITID>FIT-0001
<NAME>TRADER JOE'S #552
<MEMO>POS PURCHASE
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240305
<TRNAMT>1500.00
<FITID>FIT-0002
<NAME>ACME PAYROLL
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>2457.50
<DTASOF>20240310
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>
`

const creditCardOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102

<OFX>
<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<CCSTMTRS>
<CCACCTFROM>
<ACCTID>4111111111111111
</CCACCTFROM>
<BANKTRANLIST>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240304
<TRNAMT>25.00
<FITID>CC-1
<NAME>SPOTIFY USA
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240306
<TRNAMT>-300.00
<FITID>CC-2
<NAME>PAYMENT THANK YOU
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>garbage
<TRNAMT>1.00
<FITID>CC-3
<NAME>BROKEN
</STMTTRN>
</BANKTRANLIST>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>
`

type OFXImporterTestSuite struct {
	suite.Suite
	importer *OFXImporter
}

func TestOFXImporterSuite(t *testing.T) {
	suite.Run(t, new(OFXImporterTestSuite))
}

func (s *OFXImporterTestSuite) SetupTest() {
	s.importer = NewOFXImporter(nil)
}

func (s *OFXImporterTestSuite) TestParse_Checking() {
	stmt, err := s.importer.Parse([]byte(checkingOFX))
	s.Require().NoError(err)

	s.Equal(models.AccountTypeChecking, stmt.AccountType)
	s.Equal("000123456789", stmt.AccountNumber)
	s.Equal("FIRSTBANK", stmt.BankName)
	s.Contains(stmt.AccountName, "6789")
	s.Require().NotNil(stmt.StartDate)
	s.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *stmt.StartDate)
	s.Require().Len(stmt.Transactions, 2)

	debit := stmt.Transactions[0]
	s.Equal(models.TransactionTypeDebit, debit.Direction)
	s.Equal("42.50", debit.Amount.StringFixed(2))
	s.Equal("FIT-0001", debit.ExternalID)
	s.Equal("TRADER JOE'S #552", debit.Description)
	s.Equal("TRADER JOE'S #552", debit.PayeeText)
	s.Equal("POS PURCHASE", debit.Notes)
	s.Equal(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), debit.Date)

	credit := stmt.Transactions[1]
	s.Equal(models.TransactionTypeCredit, credit.Direction)
	s.Equal("1500.00", credit.Amount.StringFixed(2))
}

func (s *OFXImporterTestSuite) TestParse_CreditCardSignConvention() {
	stmt, err := s.importer.Parse([]byte(creditCardOFX))
	s.Require().NoError(err)

	s.Equal(models.AccountTypeCreditCard, stmt.AccountType)
	s.Require().Len(stmt.Transactions, 2)
	s.Require().Len(stmt.Errors, 1)
	s.Equal("DTPOSTED", stmt.Errors[0].Field)

	charge := stmt.Transactions[0]
	s.Equal(models.TransactionTypeDebit, charge.Direction)
	s.Equal("25.00", charge.Amount.StringFixed(2))

	payment := stmt.Transactions[1]
	s.Equal(models.TransactionTypeCredit, payment.Direction)
	s.Equal("300.00", payment.Amount.StringFixed(2))
}

func (s *OFXImporterTestSuite) TestParse_Malformed() {
	for _, input := range []string{"", "Date,Amount\n2024-01-01,1.00", "<OFX><SIGNONMSGSRSV1></SIGNONMSGSRSV1></OFX>"} {
		_, err := s.importer.Parse([]byte(input))
		s.ErrorIs(err, ErrMalformedFile, input)
	}
}

func (s *OFXImporterTestSuite) TestScanSGML_XMLStyle() {
	doc := `<?xml version="1.0"?><OFX><BANKMSGSRSV1><STMTTRNRS><STMTRS>
<BANKACCTFROM><ACCTID>999</ACCTID><ACCTTYPE>SAVINGS</ACCTTYPE></BANKACCTFROM>
<BANKTRANLIST><STMTTRN><TRNTYPE>INT</TRNTYPE><DTPOSTED>20240131</DTPOSTED><TRNAMT>0.42</TRNAMT><FITID>I1</FITID><MEMO>INTEREST &amp; DIVIDEND</MEMO></STMTTRN></BANKTRANLIST>
</STMTRS></STMTTRNRS></BANKMSGSRSV1></OFX>`

	header, nodes, err := scanSGML([]byte(doc))
	s.Require().NoError(err)
	s.Equal("999", header.AccountID)
	s.Equal("SAVINGS", header.AccountType)
	s.Require().Len(nodes, 1)
	s.Equal("INTEREST & DIVIDEND", nodes[0].Memo)

	stmt := buildStatement(header, nodes)
	s.Equal(models.AccountTypeSavings, stmt.AccountType)
	s.Require().Len(stmt.Transactions, 1)
	// No NAME, so the memo becomes the description and is not repeated in notes.
	s.Equal("INTEREST & DIVIDEND", stmt.Transactions[0].Description)
	s.Empty(stmt.Transactions[0].Notes)
}

func TestSniffFormat(t *testing.T) {
	assert.Equal(t, "ofx", SniffFormat([]byte(checkingOFX)))
	assert.Equal(t, "ofx", SniffFormat([]byte("<ofx><bankmsgsrsv1>")))
	assert.Equal(t, "csv", SniffFormat([]byte("Date,Amount\n")))
}
