package collector

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/ppiankov/awsposture/internal/dashboard"
)

// EC2API is the minimal interface for EC2 posture collection.
type EC2API interface {
	DescribeInstances(ctx context.Context, input *ec2.DescribeInstancesInput, opts ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	DescribeVolumes(ctx context.Context, input *ec2.DescribeVolumesInput, opts ...func(*ec2.Options)) (*ec2.DescribeVolumesOutput, error)
	DescribeSecurityGroups(ctx context.Context, input *ec2.DescribeSecurityGroupsInput, opts ...func(*ec2.Options)) (*ec2.DescribeSecurityGroupsOutput, error)
}

// EC2Collector assesses the security posture of EC2 instances in one
// region.
type EC2Collector struct {
	client EC2API
	region string
}

// NewEC2Collector creates a collector for EC2 instances.
func NewEC2Collector(client EC2API, region string) *EC2Collector {
	return &EC2Collector{client: client, region: region}
}

// Collect examines all running and stopped instances in the region and
// scores each one.
func (c *EC2Collector) Collect(ctx context.Context) ([]dashboard.Assessment, error) {
	instances, err := c.listInstances(ctx)
	if err != nil {
		return nil, fmt.Errorf("list EC2 instances: %w", err)
	}
	if len(instances) == 0 {
		return nil, nil
	}

	encryptedVolumes, err := c.volumeEncryption(ctx)
	if err != nil {
		return nil, fmt.Errorf("describe volumes: %w", err)
	}

	openSSHGroups, err := c.openSSHGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("describe security groups: %w", err)
	}

	assessments := make([]dashboard.Assessment, 0, len(instances))
	for _, inst := range instances {
		assessments = append(assessments, c.assess(inst, encryptedVolumes, openSSHGroups))
	}
	return assessments, nil
}

func (c *EC2Collector) assess(inst ec2types.Instance, encryptedVolumes map[string]bool, openSSHGroups map[string]bool) dashboard.Assessment {
	var issues []string

	ebsEncrypted := true
	for _, mapping := range inst.BlockDeviceMappings {
		if mapping.Ebs == nil || mapping.Ebs.VolumeId == nil {
			continue
		}
		if !encryptedVolumes[*mapping.Ebs.VolumeId] {
			ebsEncrypted = false
			break
		}
	}
	if !ebsEncrypted {
		issues = append(issues, IssueUnencryptedEBS)
	}

	hasPublicIP := inst.PublicIpAddress != nil && *inst.PublicIpAddress != ""
	if hasPublicIP {
		issues = append(issues, IssuePublicIP)
	}

	for _, sg := range inst.SecurityGroups {
		if sg.GroupId != nil && openSSHGroups[*sg.GroupId] {
			issues = append(issues, IssueOpenSSH)
			break
		}
	}

	if inst.MetadataOptions != nil && inst.MetadataOptions.HttpTokens != ec2types.HttpTokensStateRequired {
		issues = append(issues, IssueIMDSv1)
	}

	score, risk := scoreIssues(issues)

	state := ""
	if inst.State != nil {
		state = string(inst.State.Name)
	}

	return dashboard.Assessment{
		ResourceID:           derefString(inst.InstanceId),
		InstanceName:         instanceName(inst),
		Region:               c.region,
		SecurityScore:        score,
		RiskLevel:            risk,
		Issues:               issues,
		EBSEncryptionEnabled: ebsEncrypted,
		HasPublicIP:          hasPublicIP,
		State:                state,
	}
}

func (c *EC2Collector) listInstances(ctx context.Context) ([]ec2types.Instance, error) {
	var instances []ec2types.Instance
	paginator := ec2.NewDescribeInstancesPaginator(c.client, &ec2.DescribeInstancesInput{
		Filters: []ec2types.Filter{
			{
				Name:   awssdk.String("instance-state-name"),
				Values: []string{"running", "stopped"},
			},
		},
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, res := range page.Reservations {
			instances = append(instances, res.Instances...)
		}
	}
	return instances, nil
}

// volumeEncryption maps every volume in the region to its encryption
// status.
func (c *EC2Collector) volumeEncryption(ctx context.Context) (map[string]bool, error) {
	encrypted := make(map[string]bool)
	paginator := ec2.NewDescribeVolumesPaginator(c.client, &ec2.DescribeVolumesInput{})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, vol := range page.Volumes {
			if vol.VolumeId != nil {
				encrypted[*vol.VolumeId] = vol.Encrypted != nil && *vol.Encrypted
			}
		}
	}
	return encrypted, nil
}

// openSSHGroups returns the security groups that allow SSH (or all
// traffic) from anywhere.
func (c *EC2Collector) openSSHGroups(ctx context.Context) (map[string]bool, error) {
	out, err := c.client.DescribeSecurityGroups(ctx, &ec2.DescribeSecurityGroupsInput{})
	if err != nil {
		return nil, err
	}

	open := make(map[string]bool)
	for _, sg := range out.SecurityGroups {
		if sg.GroupId == nil {
			continue
		}
		for _, perm := range sg.IpPermissions {
			if !coversSSH(perm) {
				continue
			}
			if worldReachable(perm) {
				open[*sg.GroupId] = true
				break
			}
		}
	}
	return open, nil
}

// coversSSH reports whether a permission includes port 22. A nil port
// range means all ports.
func coversSSH(perm ec2types.IpPermission) bool {
	if perm.FromPort == nil || perm.ToPort == nil {
		return true
	}
	return *perm.FromPort <= 22 && *perm.ToPort >= 22
}

func worldReachable(perm ec2types.IpPermission) bool {
	for _, r := range perm.IpRanges {
		if derefString(r.CidrIp) == "0.0.0.0/0" {
			return true
		}
	}
	for _, r := range perm.Ipv6Ranges {
		if derefString(r.CidrIpv6) == "::/0" {
			return true
		}
	}
	return false
}

func instanceName(inst ec2types.Instance) string {
	for _, tag := range inst.Tags {
		if derefString(tag.Key) == "Name" {
			return derefString(tag.Value)
		}
	}
	return ""
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
