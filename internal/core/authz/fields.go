package authz

import "github.com/FelisbertoSilva/RHProjeto/internal/core/domain"

// Field names a mutable attribute in an update payload.
type Field string

const (
	FieldName       Field = "name"
	FieldNIF        Field = "nif"
	FieldRole       Field = "role"
	FieldDepartment Field = "department"
	FieldBalance    Field = "balance"

	FieldTaskName    Field = "task_name"
	FieldDescription Field = "description"
	FieldLimitDate   Field = "limit_date"
	FieldIsCompleted Field = "is_completed"
)

// userUpdateFields maps each user field to the scope under which a write to
// it takes effect. A submitted field whose scope does not hold is rejected
// individually; the rest of the payload still applies.
var userUpdateFields = map[Field]scope{
	FieldRole:       anyOf(isAdmin, hrManager),
	FieldDepartment: anyOf(isAdmin, hrManager),
	FieldName:       isAdmin,
	FieldNIF:        isAdmin,
	FieldBalance:    anyOf(self, isAdmin),
}

func isAdmin(a Actor, _ Target) bool { return a.Role == domain.RoleAdmin }

// FilterResult partitions a submitted payload into fields that take effect
// and fields that were silently rejected.
type FilterResult struct {
	Accepted []Field
	Rejected []Field
}

// Has reports whether f is among the accepted fields.
func (r FilterResult) Has(f Field) bool {
	for _, a := range r.Accepted {
		if a == f {
			return true
		}
	}
	return false
}

// FilterUserUpdate applies the per-field write rules for a user update. The
// whole request is denied when the actor may not touch the target at all, or
// when balance is submitted for a record the actor neither owns nor
// administers. A balance write is never silently dropped.
func FilterUserUpdate(a Actor, t Target, submitted []Field) (FilterResult, Decision) {
	if d := Can(a, ActionUserUpdate, t); !d.Allowed {
		return FilterResult{}, d
	}

	var res FilterResult
	for _, f := range submitted {
		s, known := userUpdateFields[f]
		if !known {
			res.Rejected = append(res.Rejected, f)
			continue
		}
		if f == FieldBalance && !s(a, t) {
			return FilterResult{}, deny("unauthorized to update balance")
		}
		if s(a, t) {
			res.Accepted = append(res.Accepted, f)
		} else {
			res.Rejected = append(res.Rejected, f)
		}
	}
	return res, allow()
}

// FilterTaskUpdate applies the per-field write rules for a task update.
// Employees may only toggle is_completed on tasks assigned to themselves;
// any other field in an employee payload denies the whole request, so no
// partial write can occur. Managers and Admins in scope may edit all fields.
func FilterTaskUpdate(a Actor, t Target, submitted []Field) (FilterResult, Decision) {
	if d := Can(a, ActionTaskUpdate, t); !d.Allowed {
		return FilterResult{}, d
	}

	if a.Role == domain.RoleEmployee {
		completed := false
		for _, f := range submitted {
			if f != FieldIsCompleted {
				return FilterResult{}, deny("employees can only mark tasks as completed or not")
			}
			completed = true
		}
		if !completed {
			return FilterResult{}, deny("employees can only mark tasks as completed or not")
		}
		return FilterResult{Accepted: []Field{FieldIsCompleted}}, allow()
	}

	return FilterResult{Accepted: submitted}, allow()
}
