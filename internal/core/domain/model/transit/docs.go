// Package transit contains the TransitDetails aggregate: the assignment of one
// shipment to one challan, together with its delivery state machine.
//
// A record walks an ordered path of milestone flags. The path depends on the
// record's route class (two-hop via an intermediate branch, or direct to the
// receiving branch) and on the shipment's delivery type (door delivery adds
// one hop). Flags move strictly forward and are never cleared; removing a
// shipment from a challan deactivates the whole record instead, which keeps
// the audit trail append-only.
package transit
