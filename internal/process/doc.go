// Package process terminates the headless browser together with the helper
// processes it spawns (renderer, GPU, zygote).
package process
