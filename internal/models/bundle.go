package models

// Bundle is the export/import document. Every key is optional on import.
type Bundle struct {
	Trades       []Trade       `json:"trades"`
	Transactions []Transaction `json:"transactions"`
	Objectives   []Objective   `json:"objectives"`
	Settings     *Settings     `json:"settings"`
}
