package dashboard

import (
	"context"
	"io"
	"sync"

	"github.com/evcraddock/rentdesk/internal/client"
	"github.com/evcraddock/rentdesk/internal/tenancy"
)

// fakeAPI implements AdminAPI and TenantAPI in memory and records every call.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	tenants     []tenancy.Tenant
	rooms       []tenancy.Room
	payments    []tenancy.Payment
	maintenance []tenancy.MaintenanceRequest
	vacate      []tenancy.VacateRequest
	profile     *tenancy.Tenant

	listErr   error
	mutateErr error

	lastFields map[string]string
	lastMonth  string
	lastUpdate [2]string
	lastProof  string
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeAPI) count(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeAPI) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeAPI) ListTenants(context.Context) ([]tenancy.Tenant, error) {
	f.record("ListTenants")
	return f.tenants, f.listErr
}

func (f *fakeAPI) CreateTenant(_ context.Context, fields map[string]string) error {
	f.record("CreateTenant")
	f.lastFields = fields
	return f.mutateErr
}

func (f *fakeAPI) ListRooms(context.Context) ([]tenancy.Room, error) {
	f.record("ListRooms")
	return f.rooms, f.listErr
}

func (f *fakeAPI) ListPayments(_ context.Context, month string) ([]tenancy.Payment, error) {
	f.record("ListPayments")
	f.lastMonth = month
	return f.payments, f.listErr
}

func (f *fakeAPI) ListMaintenance(context.Context) ([]tenancy.MaintenanceRequest, error) {
	f.record("ListMaintenance")
	return f.maintenance, f.listErr
}

func (f *fakeAPI) UpdateMaintenance(_ context.Context, id, status string) error {
	f.record("UpdateMaintenance")
	f.lastUpdate = [2]string{id, status}
	return f.mutateErr
}

func (f *fakeAPI) ListVacateRequests(context.Context) ([]tenancy.VacateRequest, error) {
	f.record("ListVacateRequests")
	return f.vacate, f.listErr
}

func (f *fakeAPI) UpdateVacate(_ context.Context, id, status string) error {
	f.record("UpdateVacate")
	f.lastUpdate = [2]string{id, status}
	return f.mutateErr
}

func (f *fakeAPI) Profile(context.Context) (*tenancy.Tenant, error) {
	f.record("Profile")
	return f.profile, f.listErr
}

func (f *fakeAPI) MyPayments(context.Context) ([]tenancy.Payment, error) {
	f.record("MyPayments")
	return f.payments, f.listErr
}

func (f *fakeAPI) UploadPayment(_ context.Context, fields map[string]string, proof client.File) error {
	f.record("UploadPayment")
	f.lastFields = fields
	if proof.Body != nil {
		data, _ := io.ReadAll(proof.Body)
		f.lastProof = proof.Filename + ":" + string(data)
	}
	return f.mutateErr
}

func (f *fakeAPI) MyMaintenance(context.Context) ([]tenancy.MaintenanceRequest, error) {
	f.record("MyMaintenance")
	return f.maintenance, f.listErr
}

func (f *fakeAPI) CreateMaintenance(_ context.Context, fields map[string]string) error {
	f.record("CreateMaintenance")
	f.lastFields = fields
	return f.mutateErr
}

func (f *fakeAPI) MyVacateRequests(context.Context) ([]tenancy.VacateRequest, error) {
	f.record("MyVacateRequests")
	return f.vacate, f.listErr
}

func (f *fakeAPI) CreateVacate(_ context.Context, fields map[string]string) error {
	f.record("CreateVacate")
	f.lastFields = fields
	return f.mutateErr
}

// countingRecorder tallies outcomes per component.
type countingRecorder struct {
	mu        sync.Mutex
	loads     map[string]int
	mutations map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{loads: map[string]int{}, mutations: map[string]int{}}
}

func (r *countingRecorder) LoadFinished(loader, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loads[loader+"/"+outcome]++
}

func (r *countingRecorder) MutationFinished(mutator, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mutations[mutator+"/"+outcome]++
}

func always(answer bool) Prompter {
	return PromptFunc(func(string) bool { return answer })
}
