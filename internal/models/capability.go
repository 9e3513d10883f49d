package models

import "strings"

// Capability is a single staff permission. Capabilities are combined into a
// CapabilitySet bit-mask and looked up by key.
type Capability uint32

const (
	CapManagePayments Capability = 1 << iota
	CapTakeAttendance
	CapViewReports
	CapManageStudents
	CapManageGroups
	CapManageInstructors
	CapManageUsers
	CapManageSubjects
	CapExportData
	CapImportData
	CapManageExpenses
	CapManageTasks
)

var capabilityKeys = map[string]Capability{
	"manage_payments":    CapManagePayments,
	"take_attendance":    CapTakeAttendance,
	"view_reports":       CapViewReports,
	"manage_students":    CapManageStudents,
	"manage_groups":      CapManageGroups,
	"manage_instructors": CapManageInstructors,
	"manage_users":       CapManageUsers,
	"manage_subjects":    CapManageSubjects,
	"export_data":        CapExportData,
	"import_data":        CapImportData,
	"manage_expenses":    CapManageExpenses,
	"manage_tasks":       CapManageTasks,
}

// CapabilityByKey resolves keys such as "manage_students".
func CapabilityByKey(key string) (Capability, bool) {
	c, ok := capabilityKeys[strings.ToLower(strings.TrimSpace(key))]
	return c, ok
}

func (c Capability) String() string {
	for key, value := range capabilityKeys {
		if value == c {
			return key
		}
	}
	return "unknown"
}

type CapabilitySet uint32

// AdminCapabilities grants everything.
const AdminCapabilities = CapabilitySet(CapManageTasks<<1 - 1)

func NewCapabilitySet(caps ...Capability) CapabilitySet {
	var set CapabilitySet
	for _, c := range caps {
		set |= CapabilitySet(c)
	}
	return set
}

// ParseCapabilitySet reads a comma separated key list. Unknown keys are
// ignored; "all" grants every capability.
func ParseCapabilitySet(value string) CapabilitySet {
	var set CapabilitySet
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if strings.EqualFold(part, "all") {
			return AdminCapabilities
		}
		if c, ok := CapabilityByKey(part); ok {
			set |= CapabilitySet(c)
		}
	}
	return set
}

func (s CapabilitySet) Has(c Capability) bool {
	return s&CapabilitySet(c) != 0
}

func (s CapabilitySet) HasKey(key string) bool {
	c, ok := CapabilityByKey(key)
	return ok && s.Has(c)
}
