// Package foclient provides the primary entry point for constructing a
// field-operations API client that implements the fieldops.Client interface.
//
// It layers configuration, HTTP transport, and authentication on top of the
// resource interfaces and types defined in the fieldops package. Most
// applications should import foclient to build a client, then use the
// returned fieldops.Client to access resource clients, for example
// Outlets(), Visits(), PlanVisits().
//
// Quick start
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
//
//	  // Minimal: just an API endpoint (no auth, e.g. to log in first).
//	  cli, err := foclient.New(&fieldops.Config{APIEndpoint: "https://api.example.com"})
//	  if err != nil { log.Fatal(err) }
//
//	  login := cli.Auth().Login(ctx, "appdev", "password", "device-token")
//	  if !login.Success {
//	    log.Fatal(login.Error)
//	  }
//
//	  // Rebuild with the session token for resource access.
//	  cli, err = foclient.NewWithToken("https://api.example.com", login.Data.Token)
//	  if err != nil { log.Fatal(err) }
//
//	  outlets := cli.Outlets().List(ctx, nil)
//	  _ = outlets
//	}
package foclient
