package main

import (
	"github.com/Arg10M10/nutrisnap-health-hub-sub001/config"
	"github.com/Arg10M10/nutrisnap-health-hub-sub001/routes"
	"github.com/Arg10M10/nutrisnap-health-hub-sub001/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()
	r := routes.SetupRouter()
	r.Run(":8080")
}
