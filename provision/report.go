package provision

import (
	"fmt"
	"io"
	"strings"
)

// Report is the outcome of a successful provisioning run. Purely
// presentational; rendering touches no remote state.
type Report struct {
	Region       string
	VPCID        string
	GroupName    string
	GroupID      string
	InstanceType string
	AMIID        string
	KeyPairName  string
	InstanceIDs  []string
	PublicIPs    []string
}

// Render writes the human-readable summary, one block per instance.
// Addresses match instances by position; instances past the end of the
// address list render without one.
func (r *Report) Render(w io.Writer) {
	fmt.Fprintln(w, "--- Provisioning Summary ---")
	for i, id := range r.InstanceIDs {
		fmt.Fprintf(w, "Instance ID: %s\n", id)
		if i < len(r.PublicIPs) {
			fmt.Fprintf(w, "Public IP: %s\n", r.PublicIPs[i])
		}
		fmt.Fprintf(w, "Instance Type: %s\n", r.InstanceType)
		fmt.Fprintf(w, "AMI ID: %s\n", r.AMIID)
		fmt.Fprintf(w, "Key Pair: %s\n", r.KeyPairName)
		fmt.Fprintf(w, "Security Group: %s (%s)\n", r.GroupName, r.GroupID)
		fmt.Fprintln(w, strings.Repeat("-", 25))
	}
}

// RenderCleanup prints the manual teardown path. Nothing is executed;
// once the process exits, the provider's inventory is the only record
// of what was created.
func (r *Report) RenderCleanup(w io.Writer) {
	fmt.Fprintln(w, "--- MANUAL CLEANUP REQUIRED ---")
	fmt.Fprintln(w, "skiff keeps no state; terminate these resources yourself when done:")
	fmt.Fprintf(w, "Instance IDs: %s\n", strings.Join(r.InstanceIDs, ", "))
	fmt.Fprintf(w, "Security Group ID: %s\n", r.GroupID)
	fmt.Fprintf(w, "To tear everything down:\n  skiff down --region %s --instances %s --security-group %s\n",
		r.Region, strings.Join(r.InstanceIDs, ","), r.GroupID)
}
