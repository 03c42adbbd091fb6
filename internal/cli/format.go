package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/evcraddock/rentdesk/internal/tenancy"
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// table writes aligned columns: a header, a separator and rows.
type table struct {
	out  io.Writer
	tw   *tabwriter.Writer
	rows int
	err  error
}

func newTable(out io.Writer, header, separator string) *table {
	t := &table{out: out, tw: tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)}
	t.line(header)
	t.line(separator)
	return t
}

func (t *table) line(s string) {
	if t.err != nil {
		return
	}
	if _, err := fmt.Fprintln(t.tw, s); err != nil {
		t.err = fmt.Errorf("writing table: %w", err)
	}
}

func (t *table) row(format string, args ...interface{}) {
	t.rows++
	t.line(fmt.Sprintf(format, args...))
}

// flush writes the table and a total line naming noun.
func (t *table) flush(noun string) error {
	if t.err != nil {
		return t.err
	}
	if err := t.tw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}
	_, err := fmt.Fprintf(t.out, "\nTotal: %d %s\n", t.rows, noun)
	return err
}

// empty prints message when there is nothing to list.
func empty(out io.Writer, message string) error {
	_, err := fmt.Fprintln(out, message)
	return err
}

// orDash returns s, or "-" when it is empty.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func printTenantTable(out io.Writer, tenants []tenancy.Tenant) error {
	if len(tenants) == 0 {
		return empty(out, "No tenants yet.")
	}

	t := newTable(out, "ID\tNAME\tROOM\tPHONE\tJOINED\tDEPOSIT", "--\t----\t----\t-----\t------\t-------")
	for i := range tenants {
		tn := &tenants[i]
		t.row("%s\t%s\t%s\t%s\t%s\t%s",
			orDash(tn.ID.String()), truncate(tn.Name, 30), tn.RoomOr("N/A"), orDash(tn.Phone), orDash(tn.JoinDate), orDash(tn.Deposit.String()))
	}
	return t.flush("tenants")
}

func printRoomTable(out io.Writer, rooms []tenancy.Room) error {
	if len(rooms) == 0 {
		return empty(out, "No rooms found.")
	}

	t := newTable(out, "ID\tROOM\tFLOOR\tOCCUPIED", "--\t----\t-----\t--------")
	for _, r := range rooms {
		occupied := "no"
		if r.Occupied {
			occupied = "yes"
		}
		t.row("%s\t%s\t%s\t%s", orDash(r.ID.String()), r.RoomNumber, orDash(r.Floor.String()), occupied)
	}
	return t.flush("rooms")
}

func printPaymentTable(out io.Writer, payments []tenancy.Payment) error {
	if len(payments) == 0 {
		return empty(out, "No payments found for this period.")
	}

	t := newTable(out, "MONTH\tTENANT\tROOM\tAMOUNT\tPROOF\tSTATUS", "-----\t------\t----\t------\t-----\t------")
	for _, p := range payments {
		proof := "None"
		if p.HasProof() {
			proof = p.ProofURL
		}
		t.row("%s\t%s\t%s\t%s\t%s\t%s",
			p.Month, orDash(p.Tenant.NameOr("")), p.Tenant.RoomOr("-"), p.Amount, proof, p.Status)
	}
	return t.flush("payments")
}

func printMaintenanceTable(out io.Writer, requests []tenancy.MaintenanceRequest) error {
	if len(requests) == 0 {
		return empty(out, "No maintenance requests.")
	}

	t := newTable(out, "ID\tDATE\tTENANT\tROOM\tISSUE\tSTATUS", "--\t----\t------\t----\t-----\t------")
	for _, m := range requests {
		t.row("%s\t%s\t%s\t%s\t%s\t%s",
			m.ID, m.CreatedDate(), orDash(m.Tenant.NameOr("")), m.Tenant.RoomOr("-"), truncate(m.Title, 40), m.Status)
	}
	return t.flush("requests")
}

func printVacateTable(out io.Writer, requests []tenancy.VacateRequest) error {
	if len(requests) == 0 {
		return empty(out, "No vacate requests.")
	}

	t := newTable(out, "ID\tDATE\tTENANT\tREASON\tDUES\tSTATUS", "--\t----\t------\t------\t----\t------")
	for _, v := range requests {
		t.row("%s\t%s\t%s\t%s\t%s\t%s",
			v.ID, v.VacateDate, orDash(v.Tenant.NameOr("")), truncate(v.Reason, 40), orDash(v.Dues.String()), v.Status)
	}
	return t.flush("requests")
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
