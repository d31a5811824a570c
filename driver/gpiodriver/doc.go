// Package gpiodriver implements the intersection hardware on real GPIO
// pins through periph.io. Signal heads are plain LEDs, one pin per lamp;
// buttons are pull-up inputs that read low while pressed. The driver is
// only available on Linux; on other platforms use memdriver.
package gpiodriver
