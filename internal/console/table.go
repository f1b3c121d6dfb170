package console

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pkordes/fleet-admin/internal/domain"
)

// RenderVehicles writes the vehicle table to w, capped at limit rows.
func RenderVehicles(w io.Writer, vehicles []domain.Vehicle, limit int) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tREGISTRATION\tMODEL\tTYPE\tSEATS\tFUEL\tVENDOR\tDRIVER\tSTATUS\tPAPERS")

	for i, v := range vehicles {
		if i >= limit {
			fmt.Fprintf(tw, "... and %d more\n", len(vehicles)-limit)
			break
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			v.ID,
			v.RegistrationNumber,
			v.Model,
			v.Type,
			v.SeatingCapacity,
			v.FuelType,
			v.VendorID,
			orDash(v.DriverID),
			v.Status,
			papersSummary(v.DocumentsValidity),
		)
	}
	tw.Flush()
	fmt.Fprintf(w, "%d vehicle(s)\n", len(vehicles))
}

// RenderDrivers writes the driver table to w, capped at limit rows.
func RenderDrivers(w io.Writer, drivers []domain.Driver, limit int) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPHONE\tVENDOR\tSTATUS\tONBOARDING\tVEHICLE\tDOCS\tTRIPS\tRATING")

	for i, d := range drivers {
		if i >= limit {
			fmt.Fprintf(tw, "... and %d more\n", len(drivers)-limit)
			break
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d\t%.1f\n",
			d.ID,
			d.Name,
			d.Phone,
			d.VendorID,
			d.Status,
			d.OnboardingStatus,
			orDash(d.VehicleID),
			docsSummary(d.Documents),
			d.Metadata.TotalTrips,
			d.Metadata.Rating,
		)
	}
	tw.Flush()
	fmt.Fprintf(w, "%d driver(s)\n", len(drivers))
}

// RenderDocuments writes one driver's document list to w.
func RenderDocuments(w io.Writer, d domain.Driver) {
	if len(d.Documents) == 0 {
		fmt.Fprintf(w, "driver %s has no documents\n", d.ID)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DOC ID\tTYPE\tNUMBER\tSTATUS\tEXPIRES\tCOMMENTS")
	for _, t := range sortedTypes(d.Documents) {
		doc := d.Documents[t]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			doc.ID,
			doc.Type,
			doc.Number,
			doc.Status,
			doc.ExpiresAt.Format("2006-01-02"),
			orDash(doc.Comments),
		)
	}
	tw.Flush()
}

// docsSummary compresses a document map into "2/3 ok" form: verified count
// over total.
func docsSummary(docs map[domain.DocumentType]domain.Document) string {
	if len(docs) == 0 {
		return "-"
	}
	verified := 0
	for _, doc := range docs {
		if doc.Status == domain.DocumentStatusVerified {
			verified++
		}
	}
	return fmt.Sprintf("%d/%d ok", verified, len(docs))
}

// papersSummary flags the vehicle papers that are not valid, e.g. "insurance!".
func papersSummary(v domain.DocumentsValidity) string {
	var bad []string
	if v.Registration != domain.ValidityValid {
		bad = append(bad, "registration!")
	}
	if v.Insurance != domain.ValidityValid {
		bad = append(bad, "insurance!")
	}
	if v.Permit != domain.ValidityValid {
		bad = append(bad, "permit!")
	}
	if len(bad) == 0 {
		return "ok"
	}
	return strings.Join(bad, " ")
}

// sortedTypes returns the document map keys in a stable order so table
// output is deterministic.
func sortedTypes(docs map[domain.DocumentType]domain.Document) []domain.DocumentType {
	order := []domain.DocumentType{
		domain.DocumentTypeLicense,
		domain.DocumentTypePermit,
		domain.DocumentTypeInsurance,
		domain.DocumentTypeRegistration,
	}
	var out []domain.DocumentType
	for _, t := range order {
		if _, ok := docs[t]; ok {
			out = append(out, t)
		}
	}
	// Unknown types (possible via seed files) go last, in map order.
	for t := range docs {
		if !contains(order, t) {
			out = append(out, t)
		}
	}
	return out
}

func contains(types []domain.DocumentType, t domain.DocumentType) bool {
	for _, x := range types {
		if x == t {
			return true
		}
	}
	return false
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
