// Command printvault catalogs 3D-printable model archives and enriches
// their records from noisy folder and file names.
package main
