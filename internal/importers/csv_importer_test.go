package importers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"fintrack/internal/models"
	"fintrack/internal/parsing"
)

const chaseCheckingCSV = `Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #
DEBIT,03/01/2024,"SQ *COFFEE SHOP #789",-4.75,DEBIT_CARD,1995.25,
DEBIT,03/02/2024,"WHOLEFDS MKT 10234 SAN FRANCISCO CA",-82.14,DEBIT_CARD,1913.11,
CREDIT,03/03/2024,"ACME CORP PAYROLL PPD ID: 9876543",2450.00,ACH_CREDIT,4363.11,
DEBIT,03/05/2024,"NETFLIX.COM",-15.49,DEBIT_CARD,4347.62,
DEBIT,03/07/2024,"SHELL OIL 57444 OAKLAND CA",-41.20,DEBIT_CARD,4306.42,
CREDIT,03/09/2024,"VENMO CASHOUT",60.00,ACH_CREDIT,4366.42,
`

type CSVImporterTestSuite struct {
	suite.Suite
	importer *CSVImporter
}

func TestCSVImporterSuite(t *testing.T) {
	suite.Run(t, new(CSVImporterTestSuite))
}

func (s *CSVImporterTestSuite) SetupTest() {
	s.importer = NewCSVImporter(nil)
}

func (s *CSVImporterTestSuite) TestRoundTrip_KnownLayout() {
	data := []byte(chaseCheckingCSV)

	table, err := s.importer.Parse(data, DetectEncoding(data))
	s.Require().NoError(err)
	s.Equal(EncodingUTF8, table.Encoding)
	s.Len(table.Rows, 6)

	format := DetectFormat(table.Columns)
	s.Equal("chase_checking", format)

	mapping := SuggestMapping(table.Columns, format)
	s.Equal("Posting Date", mapping.Date)
	s.Equal("Amount", mapping.Amount)

	result, err := s.importer.MapRows(table, mapping)
	s.Require().NoError(err)
	s.Empty(result.Errors)
	s.Zero(result.Skipped)
	s.Require().Len(result.Transactions, 6)

	debits, credits := 0, 0
	for _, tx := range result.Transactions {
		s.False(tx.Amount.IsNegative())
		switch tx.Direction {
		case models.TransactionTypeDebit:
			debits++
		case models.TransactionTypeCredit:
			credits++
		}
	}
	s.Equal(4, debits)
	s.Equal(2, credits)

	first := result.Transactions[0]
	s.Equal("4.75", first.Amount.StringFixed(2))
	s.Equal("SQ *COFFEE SHOP #789", first.Description)
	s.Equal(2, first.SourceRow)
}

func (s *CSVImporterTestSuite) TestSplitColumns() {
	data := []byte("Date,Description,Withdrawal,Deposit\n" +
		"2024-01-02,GROCERY OUTLET,45.67,\n" +
		"2024-01-03,PAYCHECK,,1200.00\n" +
		"2024-01-04,SUBTOTAL,,\n" +
		"2024-01-05,ZERO ROW,0.00,0.00\n" +
		"2024-01-06,REFUND,0,12.50\n")

	table, err := s.importer.Parse(data, "")
	s.Require().NoError(err)

	s.Equal(FormatGeneric, DetectFormat(table.Columns))
	mapping := SuggestMapping(table.Columns, FormatGeneric)
	s.Equal("Withdrawal|Deposit", mapping.Amount)

	result, err := s.importer.MapRows(table, mapping)
	s.Require().NoError(err)
	s.Equal(2, result.Skipped)
	s.Require().Len(result.Transactions, 3)

	s.Equal(models.TransactionTypeDebit, result.Transactions[0].Direction)
	s.Equal("45.67", result.Transactions[0].Amount.StringFixed(2))
	s.Equal(models.TransactionTypeCredit, result.Transactions[1].Direction)
	s.Equal(models.TransactionTypeCredit, result.Transactions[2].Direction)
	s.Equal("12.50", result.Transactions[2].Amount.StringFixed(2))
}

func (s *CSVImporterTestSuite) TestBadRowsAreCountedNotFatal() {
	data := []byte("Date,Amount,Description\n" +
		"2024-02-01,10.00,OK ONE\n" +
		"not a date,10.00,BAD DATE\n" +
		"2024-02-03,nan,BAD AMOUNT\n" +
		"2024-02-04,(5.00),REFUND FEE\n")

	table, err := s.importer.Parse(data, "")
	s.Require().NoError(err)

	result, err := s.importer.MapRows(table, SuggestMapping(table.Columns, DetectFormat(table.Columns)))
	s.Require().NoError(err)
	s.Len(result.Transactions, 2)
	s.Require().Len(result.Errors, 2)

	s.Equal(3, result.Errors[0].Row)
	s.Equal("date", result.Errors[0].Field)
	s.ErrorIs(result.Errors[0], parsing.ErrInvalidDate)
	s.ErrorIs(result.Errors[1], parsing.ErrInvalidAmount)
	s.Equal(models.TransactionTypeDebit, result.Transactions[1].Direction)
}

func (s *CSVImporterTestSuite) TestTruncatesOptionalFields() {
	long := make([]byte, 600)
	for i := range long {
		long[i] = 'A'
	}
	data := []byte("Date,Amount,Description\n2024-02-01,1.00," + string(long) + "\n")

	table, err := s.importer.Parse(data, "")
	s.Require().NoError(err)
	result, err := s.importer.MapRows(table, ColumnMapping{Date: "Date", Amount: "Amount", Description: "Description"})
	s.Require().NoError(err)
	s.Require().Len(result.Transactions, 1)
	s.Len(result.Transactions[0].Description, models.MaxDescriptionLength)
}

func (s *CSVImporterTestSuite) TestMapRows_InvalidMapping() {
	table := &Table{Columns: []string{"Date", "Amount"}}

	_, err := s.importer.MapRows(table, ColumnMapping{Date: "Date"})
	s.ErrorIs(err, ErrInvalidMapping)

	_, err = s.importer.MapRows(table, ColumnMapping{Date: "Date", Amount: "Value"})
	s.ErrorIs(err, ErrInvalidMapping)

	_, err = s.importer.MapRows(table, ColumnMapping{Date: "Date", Amount: "Amount|Credit"})
	s.ErrorIs(err, ErrInvalidMapping)
}

func (s *CSVImporterTestSuite) TestParse_Latin1Fallback() {
	// "Café" in Windows-1252.
	data := []byte("Date;Amount;Description\n2024-02-01;3,50;Caf\xe9 Rouge\n")

	table, err := s.importer.Parse(data, DetectEncoding(data))
	s.Require().NoError(err)
	s.Equal(EncodingWindows1252, table.Encoding)
	s.Equal(";", table.Delimiter)
	s.Equal("Café Rouge", table.Rows[0][2])
}

func (s *CSVImporterTestSuite) TestParse_Empty() {
	_, err := s.importer.Parse([]byte("  \n"), "")
	s.ErrorIs(err, ErrMalformedFile)

	_, err = s.importer.Parse([]byte(",,,\n1,2,3\n"), "")
	s.ErrorIs(err, ErrMalformedFile)
}

func TestDetectEncoding(t *testing.T) {
	assert.Equal(t, EncodingUTF8BOM, DetectEncoding([]byte("\xEF\xBB\xBFDate,Amount")))
	assert.Equal(t, EncodingUTF16LE, DetectEncoding([]byte{0xFF, 0xFE, 'D', 0}))
	assert.Equal(t, EncodingUTF8, DetectEncoding([]byte("Date,Amount")))
	assert.Equal(t, EncodingWindows1252, DetectEncoding([]byte("Caf\xe9")))
}

func TestDecode_StripsBOM(t *testing.T) {
	out, err := Decode([]byte("\xEF\xBB\xBFDate"), EncodingUTF8BOM)
	require.NoError(t, err)
	assert.Equal(t, "Date", string(out))

	_, err = Decode([]byte("x"), "ebcdic")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestSniffDelimiter(t *testing.T) {
	assert.Equal(t, ',', SniffDelimiter([]byte("a,b,c\n1,2,3")))
	assert.Equal(t, ';', SniffDelimiter([]byte("a;b;c\n")))
	assert.Equal(t, '\t', SniffDelimiter([]byte("a\tb\tc")))
	assert.Equal(t, '|', SniffDelimiter([]byte("a|b|c")))
	assert.Equal(t, ',', SniffDelimiter([]byte(`"a;b",c`)))
	assert.Equal(t, ',', SniffDelimiter([]byte("single")))
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		want    string
	}{
		{"chase credit", []string{"Transaction Date", "Post Date", "Description", "Category", "Type", "Amount", "Memo"}, "chase_credit"},
		{"capital one", []string{"Transaction Date", "Posted Date", "Card No.", "Description", "Category", "Debit", "Credit"}, "capital_one"},
		{"citi", []string{"Status", "Date", "Description", "Debit", "Credit"}, "citi"},
		{"discover", []string{"Trans. Date", "Post Date", "Description", "Amount", "Category"}, "discover"},
		{"bank of america", []string{"Date", "Description", "Amount", "Running Bal."}, "bank_of_america"},
		{"generic", []string{"DATE", "AMOUNT", "Reference"}, FormatGeneric},
		{"generic by substring", []string{"Booking Date", "Description"}, FormatGeneric},
		{"unknown", []string{"foo", "bar", "amount"}, FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.columns))
		})
	}
}

func TestSuggestMapping_KnownSplitLayout(t *testing.T) {
	columns := []string{"Transaction Date", "Posted Date", "Card No.", "Description", "Category", "Debit", "Credit"}
	m := SuggestMapping(columns, "capital_one")

	assert.Equal(t, "Transaction Date", m.Date)
	assert.Equal(t, "Debit|Credit", m.Amount)
	debit, credit, ok := m.SplitAmount()
	assert.True(t, ok)
	assert.Equal(t, "Debit", debit)
	assert.Equal(t, "Credit", credit)
}

func TestSuggestMapping_KnownSplitLayoutUsesHeaderSpelling(t *testing.T) {
	columns := []string{"TRANSACTION DATE", "posted date", "Card No.", " description ", "Category", "DEBIT", "credit"}
	m := SuggestMapping(columns, "capital_one")

	assert.Equal(t, "TRANSACTION DATE", m.Date)
	assert.Equal(t, " description ", m.Description)
	debit, credit, ok := m.SplitAmount()
	assert.True(t, ok)
	assert.Equal(t, "DEBIT", debit)
	assert.Equal(t, "credit", credit)
}

func TestSuggestMapping_Generic(t *testing.T) {
	columns := []string{"Date", "Payee", "Memo", "Amount", "Transaction ID"}
	m := SuggestMapping(columns, FormatGeneric)

	assert.Equal(t, ColumnMapping{
		Date:       "Date",
		Amount:     "Amount",
		Payee:      "Payee",
		Notes:      "Memo",
		ExternalID: "Transaction ID",
	}, m)
}
