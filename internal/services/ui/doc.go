// Package ui hands UI requests over to the host application.
package ui
