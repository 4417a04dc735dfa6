package models

// EmployeeRecord represents one spreadsheet row after extraction and
// normalization, before it is fanned out into the five HR tables.
type EmployeeRecord struct {
	FullName    string
	BirthDate   string
	Gender      string
	JoinDate    string
	Contract    string
	NationalID  string
	Address     string
	Phone       string
	Email       string
	BankAccount string
}
