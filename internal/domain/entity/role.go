package entity

// Role is a user's authority within one application. CostCenter is nil for
// globally scoped roles such as the accounting verificator.
type Role struct {
	BusinessPartner string  `json:"bp"`
	CostCenter      *string `json:"cost_center"`
	UserType        string  `json:"user_type"`
}

// User type constants.
const (
	UserTypeVerificatorDept   = "VD001"
	UserTypeVerificatorGroup  = "VG001"
	UserTypeVerificatorAcct   = "VA001"
	UserTypeInputterStandard  = "IS001"
	UserTypeInputterCostCtr   = "IC001"
	UserTypeAdmin             = "A0001"
)

// Application is one entry of the per-user application/role payload served
// by the BPMS identity endpoint.
type Application struct {
	Name  string `json:"app_name"`
	Roles []Role `json:"roles"`
}

// CostCenterApproval is a resolved chain of approver cost centers for a
// business partner or cost center.
type CostCenterApproval struct {
	CostCenter string `json:"cost_center"`
	Approval1  string `json:"approval1"`
	Approval2  string `json:"approval2,omitempty"`
	Approval3  string `json:"approval3,omitempty"`
	Approval4  string `json:"approval4,omitempty"`
	Approval5  string `json:"approval5,omitempty"`
}
