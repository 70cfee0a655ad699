// Package worker runs background jobs such as notification emails.
package worker
