package authz

import "github.com/FelisbertoSilva/RHProjeto/internal/core/domain"

// Action identifies an operation the engine can authorize.
type Action string

const (
	ActionUserView             Action = "user.view"
	ActionUserList             Action = "user.list"
	ActionUserListByDepartment Action = "user.list_by_department"
	ActionUserRegister         Action = "user.register"
	ActionUserUpdate           Action = "user.update"
	ActionUserInactivate       Action = "user.inactivate"
	ActionUserResetPassword    Action = "user.reset_password"
	ActionBalanceRead          Action = "balance.read"
	ActionBalanceUpdate        Action = "balance.update"

	ActionDepartmentView   Action = "department.view"
	ActionDepartmentList   Action = "department.list"
	ActionDepartmentCreate Action = "department.create"
	ActionDepartmentUpdate Action = "department.update"
	ActionDepartmentDelete Action = "department.delete"

	ActionTaskCreate     Action = "task.create"
	ActionTaskView       Action = "task.view"
	ActionTaskList       Action = "task.list"
	ActionTaskListByUser Action = "task.list_by_user"
	ActionTaskUpdate     Action = "task.update"

	ActionAuditList Action = "audit.list"
)

// scope is a predicate narrowing an action to a subset of targets.
type scope func(a Actor, t Target) bool

// rule is one capability table entry: the scope that must hold for the
// action to proceed and the reason returned when it does not.
type rule struct {
	scope  scope
	reason string
}

// unconditional grants the action for every target.
var unconditional = rule{}

func self(a Actor, t Target) bool { return a.Username == t.Username }

func sameDepartment(a Actor, t Target) bool {
	return domain.SameDepartment(a.Department, t.Department)
}

func hrManager(a Actor, _ Target) bool { return a.IsHRManager() }

func anyOf(scopes ...scope) scope {
	return func(a Actor, t Target) bool {
		for _, s := range scopes {
			if s(a, t) {
				return true
			}
		}
		return false
	}
}

// capabilities is the full authorization rule set, keyed by actor role and
// action. A missing entry is an implicit deny. The most specific identity
// match (self) is expressed inside each scope, so explicit denials
// short-circuit before any mutation is attempted.
var capabilities = map[domain.Role]map[Action]rule{
	domain.RoleAdmin: {
		ActionUserView:             unconditional,
		ActionUserList:             unconditional,
		ActionUserListByDepartment: unconditional,
		ActionUserRegister:         unconditional,
		ActionUserUpdate: {
			scope:  func(a Actor, t Target) bool { return t.Role != domain.RoleAdmin || self(a, t) },
			reason: "admins cannot update other admins",
		},
		ActionUserInactivate: {
			scope:  func(_ Actor, t Target) bool { return t.Role != domain.RoleAdmin },
			reason: "admin cannot deactivate another admin",
		},
		ActionUserResetPassword: {
			// Privileged override, narrowly scoped: Admin may reset an
			// HR Manager's password without the current one.
			scope: func(_ Actor, t Target) bool {
				return t.Role == domain.RoleManager && domain.SameDepartment(t.Department, domain.HRDepartment)
			},
			reason: "admins may only reset an hr manager's password",
		},
		ActionBalanceRead:      unconditional,
		ActionBalanceUpdate:    unconditional,
		ActionDepartmentView:   unconditional,
		ActionDepartmentList:   unconditional,
		ActionDepartmentCreate: unconditional,
		ActionDepartmentUpdate: unconditional,
		ActionDepartmentDelete: unconditional,
		ActionTaskCreate:       unconditional,
		ActionTaskView:         unconditional,
		ActionTaskList:         unconditional,
		ActionTaskListByUser:   unconditional,
		ActionTaskUpdate:       unconditional,
		ActionAuditList:        unconditional,
	},

	domain.RoleManager: {
		ActionUserView: {
			scope:  anyOf(self, sameDepartment, hrManager),
			reason: "managers can only view users in their own department or themselves",
		},
		ActionUserList: {
			scope:  hrManager,
			reason: "only hr managers may list all users",
		},
		ActionUserListByDepartment: {
			scope:  anyOf(sameDepartment, hrManager),
			reason: "managers can only view users in their own department",
		},
		ActionUserRegister: {
			scope: func(a Actor, t Target) bool {
				return a.IsHRManager() && t.NewRole == domain.RoleEmployee
			},
			reason: "managers cannot create admin or manager users",
		},
		ActionUserUpdate: {
			scope: func(a Actor, t Target) bool {
				if self(a, t) {
					return true
				}
				return a.IsHRManager() && t.Role != domain.RoleAdmin
			},
			reason: "managers can only update their own record",
		},
		ActionUserInactivate: {
			scope: func(a Actor, t Target) bool {
				return t.Role == domain.RoleEmployee && sameDepartment(a, t)
			},
			reason: "managers can only deactivate employees in their own department",
		},
		ActionBalanceRead: {
			scope:  self,
			reason: "balance is only visible to its owner",
		},
		ActionBalanceUpdate: {
			scope:  self,
			reason: "unauthorized to update balance",
		},
		ActionDepartmentView: {
			scope:  self, // target Username carries the department's manager
			reason: "managers can only view departments they manage",
		},
		ActionDepartmentList: unconditional, // service narrows to managed departments
		ActionTaskCreate:     unconditional,
		ActionTaskView: {
			scope:  sameDepartment,
			reason: "managers can only view tasks in their own department",
		},
		ActionTaskList: unconditional, // service narrows to department members
		ActionTaskListByUser: {
			scope:  sameDepartment,
			reason: "managers can only view tasks in their own department",
		},
		ActionTaskUpdate: {
			scope:  sameDepartment,
			reason: "managers cannot edit tasks outside their department",
		},
	},

	domain.RoleEmployee: {
		ActionUserView: {
			scope:  self,
			reason: "employees can only view their own profile",
		},
		ActionUserUpdate: {
			scope:  self,
			reason: "employees can only update their own information",
		},
		ActionBalanceRead: {
			scope:  self,
			reason: "balance is only visible to its owner",
		},
		ActionBalanceUpdate: {
			scope:  self,
			reason: "unauthorized to update balance",
		},
		ActionTaskView: {
			scope:  self, // target Username carries the assignee
			reason: "this task is not assigned to you",
		},
		ActionTaskListByUser: {
			scope:  self,
			reason: "you are not authorized to view this user's tasks",
		},
		ActionTaskUpdate: {
			scope:  self,
			reason: "this task is not assigned to you",
		},
	},

	// Inactive has no capabilities; authentication already rejects it.
}

// Can decides whether the actor may perform action on target. A role or
// action absent from the capability table is denied.
func Can(a Actor, action Action, t Target) Decision {
	actions, ok := capabilities[a.Role]
	if !ok {
		return deny("role has no permissions")
	}
	r, ok := actions[action]
	if !ok {
		return deny("you do not have the necessary permissions")
	}
	if r.scope != nil && !r.scope(a, t) {
		return deny(r.reason)
	}
	return allow()
}
