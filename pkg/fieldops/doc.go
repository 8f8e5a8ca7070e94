// Package fieldops provides types, interfaces, and helpers for working with
// the field-operations (outlet/visit management) REST API.
//
// # Overview
//
// The fieldops package defines the domain types (Outlet, User, Visit,
// PlanVisit, Notification) and the interfaces for resource-oriented clients.
// A concrete implementation is provided by the foclient package, which wires
// configuration, transport, and authentication. Most consumers should import
// foclient to construct a client and then interact with the resource client
// interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fieldops-io/fieldops-client/pkg/fieldops"
//	  "github.com/fieldops-io/fieldops-client/pkg/foclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := foclient.New(&fieldops.Config{APIEndpoint: "https://api.example.com", Token: "..."})
//	  if err != nil { log.Fatal(err) }
//
//	  res := cli.Outlets().List(ctx, fieldops.Filters{"status": "maintain"})
//	  if !res.Success {
//	    log.Println(res.Error)
//	    return
//	  }
//	  _ = res.Data
//	}
//
// # Results instead of errors
//
// Every resource and auth operation returns a Result[T] rather than a Go
// error. A failed operation yields Success=false and a display-safe Error
// message derived from the transport failure; nothing above this layer ever
// has to handle a raised error from these operations. The last failure is
// also retained on the owning client as LastError until the next operation
// starts.
//
// # Client state
//
// Each resource client owns one state bundle: Collection (replaced wholesale
// on every successful list fetch or mutation-triggered refresh), Selected
// (set by a single-item fetch, cleared when that entity is deleted), Pending,
// LastError, and PageInfo. Operations on one client instance are serialized:
// a second operation started while another is in flight waits its turn, so a
// stale response can never overwrite newer state.
//
// # Filters
//
// List filtering uses the Filters map. Nil and empty-string values are
// dropped when building the query string; falsy-but-defined values such as 0
// and false are preserved.
package fieldops
