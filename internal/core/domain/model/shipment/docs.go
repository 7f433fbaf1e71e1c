// Package shipment contains the consignment ("bilty") domain model.
//
// A shipment is one booked consignment: GR number, origin branch, destination
// city, package count, weight, monetary total and payment mode. Two booking
// channels produce shipments (the regular bilty flow and manual entry), and
// the transit engine unifies both.
//
// The engine reads shipments and soft-deletes them on cancellation; all other
// mutation belongs to the booking flow, which is outside this module's scope.
package shipment
