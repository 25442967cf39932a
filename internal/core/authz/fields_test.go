package authz

import (
	"testing"

	"github.com/FelisbertoSilva/RHProjeto/internal/core/domain"
)

func TestFilterUserUpdate_EmployeeSelf(t *testing.T) {
	actor := Actor{Username: "joana", Role: domain.RoleEmployee, Department: "sales"}
	target := Target{Username: "joana", Role: domain.RoleEmployee, Department: "sales"}

	res, d := FilterUserUpdate(actor, target, []Field{FieldName, FieldRole, FieldBalance})
	if !d.Allowed {
		t.Fatalf("self update should be allowed: %s", d.Reason)
	}
	if !res.Has(FieldBalance) {
		t.Fatalf("employee should update own balance")
	}
	if res.Has(FieldName) || res.Has(FieldRole) {
		t.Fatalf("name and role must be silently dropped, accepted: %v", res.Accepted)
	}
	if len(res.Rejected) != 2 {
		t.Fatalf("expected 2 rejected fields, got %v", res.Rejected)
	}
}

func TestFilterUserUpdate_BalanceOnForeignRecordDeniesWholeRequest(t *testing.T) {
	actor := Actor{Username: "helena", Role: domain.RoleManager, Department: "human resources"}
	target := Target{Username: "joana", Role: domain.RoleEmployee, Department: "sales"}

	_, d := FilterUserUpdate(actor, target, []Field{FieldDepartment, FieldBalance})
	if d.Allowed {
		t.Fatalf("balance write on another user's record must deny the whole request")
	}
}

func TestFilterUserUpdate_HRManagerRoleAndDepartment(t *testing.T) {
	actor := Actor{Username: "helena", Role: domain.RoleManager, Department: "human resources"}
	target := Target{Username: "joana", Role: domain.RoleEmployee, Department: "sales"}

	res, d := FilterUserUpdate(actor, target, []Field{FieldRole, FieldDepartment, FieldName, FieldNIF})
	if !d.Allowed {
		t.Fatalf("hr manager should update employees: %s", d.Reason)
	}
	if !res.Has(FieldRole) || !res.Has(FieldDepartment) {
		t.Fatalf("hr manager should set role and department, accepted: %v", res.Accepted)
	}
	if res.Has(FieldName) || res.Has(FieldNIF) {
		t.Fatalf("name and nif are admin-only, accepted: %v", res.Accepted)
	}
}

func TestFilterUserUpdate_AdminAllFields(t *testing.T) {
	actor := Actor{Username: "root", Role: domain.RoleAdmin}
	target := Target{Username: "joana", Role: domain.RoleEmployee, Department: "sales"}

	fields := []Field{FieldName, FieldNIF, FieldRole, FieldDepartment, FieldBalance}
	res, d := FilterUserUpdate(actor, target, fields)
	if !d.Allowed {
		t.Fatalf("admin update denied: %s", d.Reason)
	}
	if len(res.Accepted) != len(fields) {
		t.Fatalf("admin should keep every field, accepted: %v", res.Accepted)
	}
}

func TestFilterUserUpdate_OutOfScopeTarget(t *testing.T) {
	actor := Actor{Username: "joana", Role: domain.RoleEmployee, Department: "sales"}
	target := Target{Username: "rui", Role: domain.RoleEmployee, Department: "sales"}

	if _, d := FilterUserUpdate(actor, target, []Field{FieldName}); d.Allowed {
		t.Fatalf("employee must not update another user at all")
	}
}

func TestFilterTaskUpdate_EmployeeCompletionOnly(t *testing.T) {
	actor := Actor{Username: "joana", Role: domain.RoleEmployee, Department: "sales"}
	own := Target{Username: "joana", Department: "sales"}

	res, d := FilterTaskUpdate(actor, own, []Field{FieldIsCompleted})
	if !d.Allowed {
		t.Fatalf("employee should toggle completion on own task: %s", d.Reason)
	}
	if !res.Has(FieldIsCompleted) || len(res.Accepted) != 1 {
		t.Fatalf("unexpected accepted fields: %v", res.Accepted)
	}

	// Any other field denies the whole request, even alongside is_completed.
	if _, d := FilterTaskUpdate(actor, own, []Field{FieldIsCompleted, FieldDescription}); d.Allowed {
		t.Fatalf("employee payload with extra fields must be denied wholesale")
	}
	if _, d := FilterTaskUpdate(actor, own, []Field{FieldTaskName}); d.Allowed {
		t.Fatalf("employee must not rename tasks")
	}
	if _, d := FilterTaskUpdate(actor, own, nil); d.Allowed {
		t.Fatalf("empty employee payload must be denied")
	}
}

func TestFilterTaskUpdate_EmployeeForeignTask(t *testing.T) {
	actor := Actor{Username: "joana", Role: domain.RoleEmployee, Department: "sales"}
	foreign := Target{Username: "rui", Department: "sales"}

	if _, d := FilterTaskUpdate(actor, foreign, []Field{FieldIsCompleted}); d.Allowed {
		t.Fatalf("employee must not touch a task assigned to someone else")
	}
}

func TestFilterTaskUpdate_ManagerDepartmentScope(t *testing.T) {
	actor := Actor{Username: "mario", Role: domain.RoleManager, Department: "sales"}
	inDept := Target{Username: "joana", Department: "sales"}
	outDept := Target{Username: "rui", Department: "logistics"}

	fields := []Field{FieldTaskName, FieldDescription, FieldLimitDate, FieldIsCompleted}
	res, d := FilterTaskUpdate(actor, inDept, fields)
	if !d.Allowed {
		t.Fatalf("manager should edit tasks in own department: %s", d.Reason)
	}
	if len(res.Accepted) != len(fields) {
		t.Fatalf("manager should keep every field, accepted: %v", res.Accepted)
	}

	if _, d := FilterTaskUpdate(actor, outDept, fields); d.Allowed {
		t.Fatalf("manager must not edit tasks outside their department")
	}
}
