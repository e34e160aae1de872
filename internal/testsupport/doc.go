// Package testsupport provides shared fixtures for package tests: temp
// configs and subtitle file writers.
package testsupport
