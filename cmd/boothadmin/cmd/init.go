package cmd

import (
	"boothadmin/cmd/boothadmin/cmd/attendance"
	"boothadmin/cmd/boothadmin/cmd/auth"
	"boothadmin/cmd/boothadmin/cmd/gallery"
	"boothadmin/cmd/boothadmin/cmd/resource"
	"boothadmin/internal/domain/record"
)

func init() {
	// Аутентификация
	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)
	auth.AuthCmd.AddCommand(auth.WhoamiCmd)

	// Коллекции: user, tool, log, event
	for _, kind := range record.Kinds() {
		resCmd := resource.NewCmd(kind)
		if kind == record.KindLogs {
			resCmd.AddCommand(resource.NewReturnCmd())
		}
		rootCmd.AddCommand(resCmd)
	}

	rootCmd.AddCommand(attendance.AttendanceCmd)
	attendance.AttendanceCmd.AddCommand(attendance.SubmitCmd)

	rootCmd.AddCommand(gallery.GalleryCmd)
	gallery.GalleryCmd.AddCommand(gallery.ListCmd)
	gallery.GalleryCmd.AddCommand(gallery.UploadCmd)

	rootCmd.AddCommand(dashboardCmd)
}
