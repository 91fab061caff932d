// Package spreadsheet exports entity collections to xlsx workbooks and imports
// them back.
package spreadsheet

import (
	"fmt"
	"strings"

	errors "github.com/frahmantamala/parc-info/internal"
)

type Kind string

const (
	KindEmployees Kind = "employees"
	KindEquipment Kind = "equipment"
	KindInventory Kind = "inventory"
	KindLicenses  Kind = "licenses"
	KindPlanning  Kind = "planning"
	KindTickets   Kind = "tickets"
)

var Kinds = []Kind{KindEmployees, KindEquipment, KindInventory, KindLicenses, KindPlanning, KindTickets}

const (
	colID          = "ID"
	colName        = "Nom"
	colEmail       = "Email"
	colDepartment  = "Département"
	colPosition    = "Poste"
	colType        = "Type"
	colModel       = "Modèle"
	colSerial      = "Numéro de série"
	colPurchase    = "Date d'achat"
	colStatus      = "Statut"
	colAssignedTo  = "Assigné à"
	colEquipment   = "Équipement"
	colLocation    = "Localisation"
	colLastChecked = "Dernière vérification"
	colCondition   = "État"
	colVendor      = "Vendeur"
	colLicenseKey  = "Clé de licence"
	colMaxUsers    = "Utilisateurs max"
	colCurrent     = "Utilisateurs actuels"
	colCost        = "Coût"
	colTitle       = "Titre"
	colDescription = "Description"
	colStart       = "Date de début"
	colEnd         = "Date de fin"
	colNotes       = "Notes"
	colCreatedBy   = "Créé par"
	colEquipments  = "Équipements"
	colTechnicians = "Techniciens"
	colPriority    = "Priorité"
	colCreatedAt   = "Date de création"
	colUpdatedAt   = "Date de mise à jour"
)

// Headers lists the columns of each export, in order. Imports read the same
// columns by name so an exported file round-trips.
var Headers = map[Kind][]string{
	KindEmployees: {colID, colName, colEmail, colDepartment, colPosition, colCreatedAt, colUpdatedAt},
	KindEquipment: {colID, colType, colModel, colSerial, colPurchase, colStatus, colAssignedTo, colCreatedAt, colUpdatedAt},
	KindInventory: {colID, colEquipment, colAssignedTo, colLocation, colLastChecked, colCondition, colCreatedAt, colUpdatedAt},
	KindLicenses:  {colID, colName, colVendor, colType, colLicenseKey, colMaxUsers, colCurrent, colCost, colCreatedAt, colUpdatedAt},
	KindPlanning:  {colID, colTitle, colType, colDescription, colStart, colEnd, colStatus, colNotes, colCreatedBy, colEquipments, colTechnicians, colCreatedAt, colUpdatedAt},
	KindTickets:   {colID, colTitle, colDescription, colCreatedBy, colAssignedTo, colStatus, colPriority, colCreatedAt, colUpdatedAt},
}

// listSeparator joins several linked records in one cell.
const listSeparator = "; "

func ParseKind(raw string) (Kind, *errors.AppError) {
	k := Kind(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := Headers[k]; ok {
		return k, nil
	}
	names := make([]string, len(Kinds))
	for i, kind := range Kinds {
		names[i] = string(kind)
	}
	return "", errors.NewValidationFieldError("type",
		fmt.Sprintf("type must be one of: %s", strings.Join(names, ", ")), errors.ErrCodeUnsupportedType)
}

// Sheet is one exported table: a header row and its data rows.
type Sheet struct {
	Kind    Kind
	Headers []string
	Rows    [][]interface{}
}

func newSheet(kind Kind) *Sheet {
	return &Sheet{Kind: kind, Headers: Headers[kind], Rows: [][]interface{}{}}
}

func (s *Sheet) add(cells ...interface{}) {
	s.Rows = append(s.Rows, cells)
}

// Row is one imported line keyed by header. Line is the spreadsheet row
// number, used in error messages.
type Row struct {
	Line  int
	cells map[string]string
}

func (r Row) Get(column string) string {
	return strings.TrimSpace(r.cells[column])
}

func rowError(line int, format string, args ...interface{}) *errors.AppError {
	return errors.NewValidationError(fmt.Sprintf("row %d: ", line)+fmt.Sprintf(format, args...), errors.ErrCodeInvalidRow)
}

var ErrMissingFile = errors.NewValidationFieldError("file", "file is required", errors.ErrCodeMissingFile)

func ErrInvalidFile(cause error) *errors.AppError {
	return errors.NewValidationFieldError("file", "file is not a readable xlsx workbook", errors.ErrCodeInvalidFile).WithCause(cause)
}
