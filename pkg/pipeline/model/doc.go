// Package model provides the data structures shared between the pipeline
// package and its options. It defines the stage description handed to every
// option hook and the option lifecycle itself.
package model
